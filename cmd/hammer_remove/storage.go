package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kinasplayground/hammerremove/internal/config"
	"github.com/kinasplayground/hammerremove/internal/database"
	"github.com/kinasplayground/hammerremove/internal/influx"
	"github.com/kinasplayground/hammerremove/internal/storage"
	gormstorage "github.com/kinasplayground/hammerremove/internal/storage/gorm"
	"github.com/kinasplayground/hammerremove/internal/storage/memory"
)

// createStorageBackend builds the audit backend named by storage.type.
// The returned backend is not initialized yet.
func createStorageBackend(storageCfg config.StorageConfig, log zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		m := database.NewManager(log)
		if err := m.ConnectPostgres(); err != nil {
			return nil, err
		}
		log.Info().Msg("Postgres storage backend initialized")
		return gormstorage.New(gormstorage.Dependencies{DB: m.DB, Logger: log, Migrate: m.Setup, Close: m.Close}), nil

	case "sqlite":
		m := database.NewManager(log)
		if err := m.ConnectSQLite(storageCfg.SQLite.Path); err != nil {
			return nil, err
		}
		log.Info().Str("path", storageCfg.SQLite.Path).Msg("SQLite storage backend initialized")
		return gormstorage.New(gormstorage.Dependencies{DB: m.DB, Logger: log, Migrate: m.Setup, Close: m.Close}), nil

	case "influx":
		log.Info().Msg("InfluxDB storage backend initialized")
		return influx.NewBackend(influx.NewManager(log, viper.GetString("influx.backupPath"))), nil

	case "none":
		return storage.Nop{}, nil

	case "memory", "":
		log.Info().Str("outputDir", storageCfg.Memory.OutputDir).Msg("Memory storage backend initialized")
		return memory.New(storageCfg.Memory), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}

// openStorage creates and initializes the backend, falling back to a no-op
// backend so removals keep working when the audit store is unavailable.
func (a *app) openStorage(storageCfg config.StorageConfig) storage.Backend {
	backend, err := createStorageBackend(storageCfg, a.zlog)
	if err != nil {
		a.logger.Error("Failed to create storage backend, audit log disabled", "type", storageCfg.Type, "error", err)
		return storage.Nop{}
	}
	if err := backend.Init(); err != nil {
		a.logger.Error("Failed to initialize storage backend, audit log disabled", "type", storageCfg.Type, "error", err)
		_ = backend.Close()
		return storage.Nop{}
	}
	return backend
}
