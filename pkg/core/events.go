package core

import (
	"time"
)

// Status is the outcome of a trigger or command as shown to the participant.
type Status string

const (
	StatusNotApplicable Status = "not_applicable"
	StatusNoTarget      Status = "no_target"
	StatusNotOwned      Status = "not_owned"
	StatusRemoved       Status = "removed"
	StatusToggledOn     Status = "toggled_on"
	StatusToggledOff    Status = "toggled_off"
	StatusUsage         Status = "usage"
)

// RemovalMode tells single-target removals apart from connected walks.
type RemovalMode string

const (
	ModeSingle RemovalMode = "single"
	ModeMass   RemovalMode = "mass"
)

// Removal is one handled removal trigger.
type Removal struct {
	ID         uint
	Time       time.Time
	PlayerID   uint64
	Mode       RemovalMode
	Stage      string // probe that resolved the target
	TargetID   uint64
	TargetKind Kind
	Position   Vec3
	Removed    int
	Visited    int
	Skipped    int
}

// ModeChange records a participant switching mass removal on or off.
type ModeChange struct {
	ID       uint
	Time     time.Time
	PlayerID uint64
	Enabled  bool
}

// StatusReport is a point-in-time snapshot of extension activity.
type StatusReport struct {
	Time             time.Time `json:"time"`
	MassModeSessions int       `json:"massModeSessions"`
	Triggers         int64     `json:"triggers"`
	PiecesRemoved    int64     `json:"piecesRemoved"`
}
