package memory

import (
	"sync"
	"time"

	"github.com/kinasplayground/hammerremove/internal/config"
	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Backend keeps the audit log in memory and exports it to JSON on Close.
type Backend struct {
	cfg     config.MemoryConfig
	started time.Time

	removals    []core.Removal
	modeChanges []core.ModeChange

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init marks the start of the session used to name the export file.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = time.Now().UTC()
	return nil
}

// Close exports everything recorded so far. Nothing is written when the log is
// empty or no output directory is configured.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.OutputDir == "" || (len(b.removals) == 0 && len(b.modeChanges) == 0) {
		return nil
	}
	return b.exportJSON()
}

// RecordRemoval stores a copy of r.
func (b *Backend) RecordRemoval(r *core.Removal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	r.ID = b.idCounter
	b.removals = append(b.removals, *r)
	return nil
}

// RecordModeChange stores a copy of c.
func (b *Backend) RecordModeChange(c *core.ModeChange) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	c.ID = b.idCounter
	b.modeChanges = append(b.modeChanges, *c)
	return nil
}

// Removals returns a copy of the recorded removals.
func (b *Backend) Removals() []core.Removal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.Removal(nil), b.removals...)
}

// RemovalsByPlayer returns the player's removals in recording order.
func (b *Backend) RemovalsByPlayer(playerID uint64) ([]core.Removal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []core.Removal
	for _, r := range b.removals {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ModeChanges returns a copy of the recorded mode changes.
func (b *Backend) ModeChanges() []core.ModeChange {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.ModeChange(nil), b.modeChanges...)
}

// ExportedFilePath returns the path of the last export, if any.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
