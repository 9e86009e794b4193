package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/kinasplayground/hammerremove/internal/config"
	"github.com/kinasplayground/hammerremove/internal/dispatcher"
	"github.com/kinasplayground/hammerremove/internal/handlers"
	"github.com/kinasplayground/hammerremove/internal/logging"
	"github.com/kinasplayground/hammerremove/internal/monitor"
	intOtel "github.com/kinasplayground/hammerremove/internal/otel"
	"github.com/kinasplayground/hammerremove/internal/scene"
	"github.com/kinasplayground/hammerremove/internal/session"
	"github.com/kinasplayground/hammerremove/internal/storage"
	"github.com/kinasplayground/hammerremove/pkg/core"
	"github.com/kinasplayground/hammerremove/pkg/hostcall"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentExtensionVersion string = "1.3.1"
	BuildDate               string = "unknown"

	ExtensionName string = "hammer_remove"
)

// app holds everything wired at startup.
type app struct {
	started time.Time

	logManager   *logging.SlogManager
	logger       *slog.Logger
	zlog         zerolog.Logger
	logFile      *os.File
	graylog      io.Closer
	otelProvider *intOtel.Provider

	world      *scene.Scene
	sessions   *session.Store
	backend    storage.Backend
	service    *handlers.Service
	dispatcher *dispatcher.Dispatcher
	host       *hostcall.Host
	monitor    *monitor.Service
}

func main() {
	configDir := pflag.String("config", ".", "directory containing "+config.FileName)
	cellSize := pflag.Float64("scene-cell", scene.DefaultCellSize, "cell size of the simulated scene's spatial grid")
	pflag.String("log-level", "", "overrides logLevel from the config file")
	pflag.Parse()

	if err := viper.BindPFlag("logLevel", pflag.Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "binding flags: %v\n", err)
		os.Exit(1)
	}

	a, err := setup(*configDir, *cellSize, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.shutdown()

	if err := a.serve(os.Stdin, os.Stdout); err != nil {
		a.logger.Error("Host call loop stopped", "error", err)
	}
}

// setup loads configuration and wires every component. bootstrap receives
// log output until the session log file is open.
func setup(configDir string, cellSize float64, bootstrap io.Writer) (*app, error) {
	a := &app{started: time.Now()}

	a.logManager = logging.NewSlogManager()
	a.logManager.Setup(bootstrap, viper.GetString("logLevel"), nil)
	a.logger = a.logManager.Logger()

	if err := config.Load(configDir); err != nil {
		a.logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		a.logger.Info("Loaded config", "file", viper.ConfigFileUsed())
	}

	logFile, logPath, err := logging.OpenLogFile(viper.GetString("logsDir"), ExtensionName, a.started)
	if err != nil {
		return nil, err
	}
	a.logFile = logFile
	a.logger.Info("Begin logging in logs directory", "path", logPath)

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		a.otelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			BatchTimeout:   otelCfg.BatchTimeout,
			MetricInterval: otelCfg.MetricInterval,
			LogWriter:      logFile,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			a.logger.Error("Failed to initialize OTel provider", "error", err)
			a.otelProvider = nil
		}
	}

	removalCfg, fixed := config.GetRemovalConfig()
	a.sessions = session.NewStore(removalCfg.DefaultMassRemove)

	level := viper.GetString("logLevel")
	a.logManager.SetContextProvider(func() []slog.Attr {
		return []slog.Attr{slog.Int("massModeSessions", a.sessions.ActiveCount())}
	})
	var otelLogProvider *sdklog.LoggerProvider
	if a.otelProvider != nil {
		otelLogProvider = a.otelProvider.LoggerProvider()
	}
	a.logManager.Setup(logFile, level, otelLogProvider)
	a.logger = a.logManager.Logger()

	var gelfSink io.Writer
	if viper.GetBool("graylog.enabled") {
		w, err := logging.NewGraylogWriter(viper.GetString("graylog.address"))
		if err != nil {
			a.logger.Error("Graylog sink disabled", "error", err)
		} else {
			a.graylog = w
			gelfSink = w
		}
	}
	a.zlog = logging.NewZerolog(logFile, level, gelfSink)

	for _, key := range fixed {
		a.logger.Warn("Invalid removal setting replaced with default", "key", key)
	}
	a.logger.Info("Removal settings",
		"requireOwnership", removalCfg.RequireOwnership,
		"defaultMassRemove", removalCfg.DefaultMassRemove,
		"maxDistance", removalCfg.MaxDistance,
		"probeRadius", removalCfg.ProbeRadius,
		"connectRadius", removalCfg.ConnectRadius)

	a.backend = a.openStorage(config.GetStorageConfig())
	a.world = scene.New(cellSize)

	a.service, err = handlers.NewService(handlers.Dependencies{
		World:    a.world,
		Sessions: a.sessions,
		Settings: removalCfg,
		Backend:  a.backend,
		Overlay:  handlers.NewLogOverlay(a.logger),
		Logger:   a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating handler service: %w", err)
	}

	a.dispatcher, err = dispatcher.New(logging.NewDispatcherLogger(a.zlog))
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}
	a.service.RegisterHandlers(a.dispatcher)
	a.registerSimHandlers(a.dispatcher)

	a.host = hostcall.New(a.dispatcher, CurrentExtensionVersion)
	a.logger.Info("Host bridge ready",
		"version", CurrentExtensionVersion,
		"buildDate", BuildDate,
		"commands", a.dispatcher.Commands())

	monCfg := config.GetMonitorConfig()
	if monCfg.Enabled {
		a.monitor = monitor.NewService(monitor.Dependencies{
			Logger:     a.logger,
			StatusFile: monCfg.StatusFile,
			Interval:   monCfg.Interval,
			Report:     a.statusReport,
		})
		if err := a.monitor.Start(); err != nil {
			a.logger.Error("Status monitor not started", "error", err)
		}
	}

	return a, nil
}

// statusReport snapshots extension activity.
func (a *app) statusReport() core.StatusReport {
	totals := a.service.Totals()
	return core.StatusReport{
		Time:             time.Now().UTC(),
		MassModeSessions: a.sessions.ActiveCount(),
		Triggers:         totals.Triggers,
		PiecesRemoved:    totals.PiecesRemoved,
	}
}

// serve answers one host call per input line until r is exhausted.
// Blank lines and lines starting with '#' are ignored.
func (a *app) serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := fmt.Fprintln(w, a.host.Call(line)); err != nil {
			return fmt.Errorf("writing reply: %w", err)
		}
	}
	return scanner.Err()
}

// shutdown stops background work and flushes every sink.
func (a *app) shutdown() {
	if a.monitor != nil {
		a.monitor.Stop()
	}

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("Failed to close storage backend", "error", err)
		}
		if e, ok := a.backend.(storage.Exportable); ok && e.ExportedFilePath() != "" {
			a.logger.Info("Audit log exported", "path", e.ExportedFilePath())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.otelProvider != nil {
		if err := a.otelProvider.Shutdown(ctx); err != nil {
			a.logger.Error("OTel shutdown failed", "error", err)
		}
	}
	a.logger.Info("Shutting down")
	if err := a.logManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "flushing logs: %v\n", err)
	}

	if a.graylog != nil {
		_ = a.graylog.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
