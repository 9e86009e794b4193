package model

import (
	"encoding/json"
	"fmt"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/kinasplayground/hammerremove/internal/geo"
	"github.com/kinasplayground/hammerremove/pkg/core"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Removal{},
	&ModeChange{},
}

// Removal is one handled hammer trigger that destroyed at least one object.
type Removal struct {
	ID         uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time      `json:"time" gorm:"index:idx_removal_time"`
	PlayerID   uint64         `json:"playerId" gorm:"index:idx_removal_player_id"`
	Mode       string         `json:"mode" gorm:"size:8"`
	TargetID   uint64         `json:"targetId"`
	TargetKind string         `json:"targetKind" gorm:"size:16"`
	Position   geom.Point     `json:"position"` // XYZ, world units
	Removed    int            `json:"removed"`
	Details    datatypes.JSON `json:"details"`
}

func (*Removal) TableName() string {
	return "removals"
}

// RemovalDetails is stored in Removal.Details.
type RemovalDetails struct {
	Stage   string `json:"stage,omitempty"`
	Visited int    `json:"visited"`
	Skipped int    `json:"skipped"`
}

// ModeChange records a participant switching mass removal on or off.
type ModeChange struct {
	ID       uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time     time.Time `json:"time" gorm:"index:idx_modechange_time"`
	PlayerID uint64    `json:"playerId" gorm:"index:idx_modechange_player_id"`
	Enabled  bool      `json:"enabled"`
}

func (*ModeChange) TableName() string {
	return "mode_changes"
}

// RemovalToModel converts a core removal into its table row.
func RemovalToModel(r core.Removal) (Removal, error) {
	details, err := json.Marshal(RemovalDetails{
		Stage:   r.Stage,
		Visited: r.Visited,
		Skipped: r.Skipped,
	})
	if err != nil {
		return Removal{}, fmt.Errorf("marshal removal details: %w", err)
	}
	position, err := geo.PointFromVec3(r.Position)
	if err != nil {
		return Removal{}, err
	}
	return Removal{
		ID:         r.ID,
		Time:       r.Time,
		PlayerID:   r.PlayerID,
		Mode:       string(r.Mode),
		TargetID:   r.TargetID,
		TargetKind: r.TargetKind.String(),
		Position:   position,
		Removed:    r.Removed,
		Details:    datatypes.JSON(details),
	}, nil
}

// RemovalFromModel converts a table row back into a core removal.
func RemovalFromModel(m Removal) (core.Removal, error) {
	var details RemovalDetails
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return core.Removal{}, fmt.Errorf("unmarshal removal details: %w", err)
		}
	}
	kind, ok := core.ParseKind(m.TargetKind)
	if !ok {
		return core.Removal{}, fmt.Errorf("unknown target kind %q", m.TargetKind)
	}
	return core.Removal{
		ID:         m.ID,
		Time:       m.Time,
		PlayerID:   m.PlayerID,
		Mode:       core.RemovalMode(m.Mode),
		Stage:      details.Stage,
		TargetID:   m.TargetID,
		TargetKind: kind,
		Position:   geo.Vec3FromPoint(m.Position),
		Removed:    m.Removed,
		Visited:    details.Visited,
		Skipped:    details.Skipped,
	}, nil
}

// ModeChangeToModel converts a core mode change into its table row.
func ModeChangeToModel(c core.ModeChange) ModeChange {
	return ModeChange{
		ID:       c.ID,
		Time:     c.Time,
		PlayerID: c.PlayerID,
		Enabled:  c.Enabled,
	}
}

// ModeChangeFromModel converts a table row back into a core mode change.
func ModeChangeFromModel(m ModeChange) core.ModeChange {
	return core.ModeChange{
		ID:       m.ID,
		Time:     m.Time,
		PlayerID: m.PlayerID,
		Enabled:  m.Enabled,
	}
}
