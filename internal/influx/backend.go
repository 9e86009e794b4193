package influx

import (
	"sync/atomic"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Backend records the audit log as InfluxDB points.
type Backend struct {
	manager *Manager
	nextID  atomic.Uint64
}

// NewBackend wraps a manager that has not been connected yet.
func NewBackend(m *Manager) *Backend {
	return &Backend{manager: m}
}

// Init connects to the server (or opens the backup file).
func (b *Backend) Init() error {
	return b.manager.Connect()
}

// Close flushes and closes the manager.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// RecordRemoval writes r as a point. IDs are only unique within this process.
func (b *Backend) RecordRemoval(r *core.Removal) error {
	r.ID = uint(b.nextID.Add(1))
	return b.manager.WritePoint(RemovalPoint(r))
}

// RecordModeChange writes c as a point.
func (b *Backend) RecordModeChange(c *core.ModeChange) error {
	c.ID = uint(b.nextID.Add(1))
	return b.manager.WritePoint(ModeChangePoint(c))
}
