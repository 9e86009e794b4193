package storage

import "github.com/kinasplayground/hammerremove/pkg/core"

// Backend is the interface all removal audit stores must satisfy.
// Record methods assign the record's ID before returning.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	RecordRemoval(r *core.Removal) error
	RecordModeChange(c *core.ModeChange) error
}

// Exportable is an optional interface for backends that write a file on Close.
type Exportable interface {
	ExportedFilePath() string
}

// Queryable is an optional interface for backends that can read removals back.
type Queryable interface {
	RemovalsByPlayer(playerID uint64) ([]core.Removal, error)
}

// Nop discards every record. Used when no backend could be initialized.
type Nop struct{}

func (Nop) Init() error                             { return nil }
func (Nop) Close() error                            { return nil }
func (Nop) RecordRemoval(*core.Removal) error       { return nil }
func (Nop) RecordModeChange(*core.ModeChange) error { return nil }
