package gormstorage

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kinasplayground/hammerremove/internal/model"
	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Dependencies holds what the backend needs from the caller.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	// Migrate creates the audit tables; AutoMigrate on DB when nil.
	Migrate func() error
	// Close releases the connection; optional.
	Close func() error
}

// Backend writes the audit log to a sqlite or postgres database through gorm.
// Each record is inserted immediately.
type Backend struct {
	deps Dependencies
}

// New creates a new gorm backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init migrates the audit tables.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("gorm backend: no database")
	}
	migrate := b.deps.Migrate
	if migrate == nil {
		migrate = func() error { return b.deps.DB.AutoMigrate(model.DatabaseModels...) }
	}
	if err := migrate(); err != nil {
		return fmt.Errorf("gorm backend: migrate: %w", err)
	}
	b.deps.Logger.Debug().Str("dialect", b.deps.DB.Dialector.Name()).Msg("Audit tables ready")
	return nil
}

// Close releases the database connection if a closer was provided.
func (b *Backend) Close() error {
	if b.deps.Close == nil {
		return nil
	}
	return b.deps.Close()
}

// RecordRemoval inserts r and copies the generated ID back.
func (b *Backend) RecordRemoval(r *core.Removal) error {
	row, err := model.RemovalToModel(*r)
	if err != nil {
		return err
	}
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("insert removal: %w", err)
	}
	r.ID = row.ID
	return nil
}

// RecordModeChange inserts c and copies the generated ID back.
func (b *Backend) RecordModeChange(c *core.ModeChange) error {
	row := model.ModeChangeToModel(*c)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("insert mode change: %w", err)
	}
	c.ID = row.ID
	return nil
}

// RemovalsByPlayer returns the player's removals, oldest first.
func (b *Backend) RemovalsByPlayer(playerID uint64) ([]core.Removal, error) {
	var rows []model.Removal
	if err := b.deps.DB.Where("player_id = ?", playerID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query removals: %w", err)
	}
	out := make([]core.Removal, 0, len(rows))
	for _, row := range rows {
		r, err := model.RemovalFromModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
