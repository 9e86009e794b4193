package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "hammer_remove.cfg.json"

// Fallbacks substituted for invalid removal distances.
const (
	DefaultMaxDistance   = 8.0
	DefaultProbeRadius   = 0.25
	DefaultConnectRadius = 3.0
)

// RemovalConfig holds the settings read by target resolution and the connected walk.
type RemovalConfig struct {
	RequireOwnership  bool    `json:"requireOwnership" mapstructure:"requireOwnership"`
	DefaultMassRemove bool    `json:"defaultMassRemove" mapstructure:"defaultMassRemove"`
	MaxDistance       float64 `json:"maxDistance" mapstructure:"maxDistance"`
	ProbeRadius       float64 `json:"probeRadius" mapstructure:"probeRadius"`
	ConnectRadius     float64 `json:"connectRadius" mapstructure:"connectRadius"`
}

// Sanitize replaces non-positive or NaN distances with their defaults and
// returns the keys it replaced.
func (c *RemovalConfig) Sanitize() []string {
	var fixed []string
	if !(c.MaxDistance > 0) {
		c.MaxDistance = DefaultMaxDistance
		fixed = append(fixed, "removal.maxDistance")
	}
	if !(c.ProbeRadius > 0) {
		c.ProbeRadius = DefaultProbeRadius
		fixed = append(fixed, "removal.probeRadius")
	}
	if !(c.ConnectRadius > 0) {
		c.ConnectRadius = DefaultConnectRadius
		fixed = append(fixed, "removal.connectRadius")
	}
	return fixed
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds sqlite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects and configures the audit storage backend.
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool
	ServiceName    string
	BatchTimeout   time.Duration
	MetricInterval time.Duration
	Endpoint       string
	Insecure       bool
}

// MonitorConfig holds status monitor settings
type MonitorConfig struct {
	Enabled    bool
	Interval   time.Duration
	StatusFile string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./hammerlogs")

	viper.SetDefault("removal.requireOwnership", true)
	viper.SetDefault("removal.defaultMassRemove", false)
	viper.SetDefault("removal.maxDistance", DefaultMaxDistance)
	viper.SetDefault("removal.probeRadius", DefaultProbeRadius)
	viper.SetDefault("removal.connectRadius", DefaultConnectRadius)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./removals")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./hammer_remove.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "hammer_remove")

	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "hammer-remove")
	viper.SetDefault("influx.bucket", "removals")
	viper.SetDefault("influx.backupPath", "./removals.lp.gz")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "hammer-remove")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.metricInterval", "30s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.interval", "5s")
	viper.SetDefault("monitor.statusFile", "status.json")

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetRemovalConfig returns the sanitized removal settings and the keys that
// had to be replaced with defaults.
func GetRemovalConfig() (RemovalConfig, []string) {
	cfg := RemovalConfig{
		RequireOwnership:  viper.GetBool("removal.requireOwnership"),
		DefaultMassRemove: viper.GetBool("removal.defaultMassRemove"),
		MaxDistance:       viper.GetFloat64("removal.maxDistance"),
		ProbeRadius:       viper.GetFloat64("removal.probeRadius"),
		ConnectRadius:     viper.GetFloat64("removal.connectRadius"),
	}
	fixed := cfg.Sanitize()
	return cfg, fixed
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		BatchTimeout:   viper.GetDuration("otel.batchTimeout"),
		MetricInterval: viper.GetDuration("otel.metricInterval"),
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
	}
}

// GetMonitorConfig returns the status monitor configuration.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Enabled:    viper.GetBool("monitor.enabled"),
		Interval:   viper.GetDuration("monitor.interval"),
		StatusFile: viper.GetString("monitor.statusFile"),
	}
}
