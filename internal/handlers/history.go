package handlers

import (
	"errors"
	"time"

	"github.com/kinasplayground/hammerremove/internal/geo"
	"github.com/kinasplayground/hammerremove/internal/storage"
)

// ErrNoHistory is returned when the audit backend cannot be read back.
var ErrNoHistory = errors.New("removal history not available for this storage backend")

// HistoryEntry is one past removal as reported to the host.
type HistoryEntry struct {
	Time       time.Time `json:"time"`
	Mode       string    `json:"mode"`
	Stage      string    `json:"stage,omitempty"`
	TargetID   uint64    `json:"targetId"`
	TargetKind string    `json:"targetKind"`
	Position   string    `json:"position"`
	Removed    int       `json:"removed"`
}

// History returns the participant's recorded removals, oldest first.
func (s *Service) History(playerID uint64) ([]HistoryEntry, error) {
	q, ok := s.deps.Backend.(storage.Queryable)
	if !ok {
		return nil, ErrNoHistory
	}
	removals, err := q.RemovalsByPlayer(playerID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(removals))
	for _, r := range removals {
		out = append(out, HistoryEntry{
			Time:       r.Time,
			Mode:       string(r.Mode),
			Stage:      r.Stage,
			TargetID:   r.TargetID,
			TargetKind: r.TargetKind.String(),
			Position:   geo.Vec3String(r.Position),
			Removed:    r.Removed,
		})
	}
	return out, nil
}
