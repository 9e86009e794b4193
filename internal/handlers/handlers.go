// Package handlers turns participant input (the hammer gesture, the remove
// command and disconnects) into removals, mode toggles and chat feedback.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kinasplayground/hammerremove/internal/config"
	"github.com/kinasplayground/hammerremove/internal/logging"
	"github.com/kinasplayground/hammerremove/internal/removal"
	"github.com/kinasplayground/hammerremove/internal/session"
	"github.com/kinasplayground/hammerremove/internal/storage"
	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Chat lines sent back to the participant.
const (
	MsgNoTarget         = "You're not looking at a removable object."
	MsgNotOwnedBlock    = "You don't own this building block."
	MsgNotOwnedDeployed = "You don't own this deployable."
	MsgUsage            = "Usage: /remove all"
	MsgMassEnabled      = "Mass removal mode is now enabled."
	MsgMassDisabled     = "Mass removal mode is now disabled."
)

// heldItemMarker must appear in the held item's short name for the gesture
// to count as a removal trigger.
const heldItemMarker = "hammer"

// Trigger is one hammer gesture.
type Trigger struct {
	PlayerID  uint64
	Origin    core.Vec3
	Direction core.Vec3
	HeldItem  string // short name of the active item, empty when nothing is held
}

// Feedback is what the participant gets back.
type Feedback struct {
	Status   core.Status `json:"status"`
	Count    int         `json:"count"`
	Messages []string    `json:"messages,omitempty"`
}

// Totals are running counters since startup.
type Totals struct {
	Triggers      int64 `json:"triggers"`
	PiecesRemoved int64 `json:"piecesRemoved"`
}

// Dependencies holds everything the service needs.
type Dependencies struct {
	World    core.World
	Sessions *session.Store
	Settings config.RemovalConfig
	Backend  storage.Backend // optional, defaults to storage.Nop
	Overlay  Overlay         // optional, defaults to NopOverlay
	Logger   *slog.Logger
}

// Service handles removal input. Calls are expected from the host tick, one
// at a time; counters may be read concurrently.
type Service struct {
	deps     Dependencies
	resolver *removal.Resolver
	walker   *removal.Walker
	logger   *slog.Logger
	now      func() time.Time

	triggers atomic.Int64
	removed  atomic.Int64
}

// NewService validates deps and builds the resolver and walker.
func NewService(deps Dependencies) (*Service, error) {
	if deps.World == nil {
		return nil, fmt.Errorf("handlers: world is required")
	}
	if deps.Sessions == nil {
		deps.Sessions = session.NewStore(deps.Settings.DefaultMassRemove)
	}
	if deps.Backend == nil {
		deps.Backend = storage.Nop{}
	}
	if deps.Overlay == nil {
		deps.Overlay = NopOverlay{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	resolver, err := removal.NewResolver(deps.World, deps.Settings.MaxDistance, deps.Settings.ProbeRadius, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating resolver: %w", err)
	}
	walker, err := removal.NewWalker(deps.World, deps.Settings.ConnectRadius, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating walker: %w", err)
	}

	return &Service{
		deps:     deps,
		resolver: resolver,
		walker:   walker,
		logger:   deps.Logger,
		now:      time.Now,
	}, nil
}

// Sessions exposes the session store.
func (s *Service) Sessions() *session.Store {
	return s.deps.Sessions
}

// Totals returns the running counters.
func (s *Service) Totals() Totals {
	return Totals{
		Triggers:      s.triggers.Load(),
		PiecesRemoved: s.removed.Load(),
	}
}

// HandleHammer resolves the participant's target and removes it, or the whole
// connected structure when mass removal is on and the target is structural.
func (s *Service) HandleHammer(t Trigger) Feedback {
	if !strings.Contains(t.HeldItem, heldItemMarker) {
		return Feedback{Status: core.StatusNotApplicable}
	}
	s.triggers.Add(1)
	ctx := playerContext(t.PlayerID)

	target, stage := s.resolver.ResolveStage(removal.Ray{Origin: t.Origin, Direction: t.Direction})
	if target == nil {
		return Feedback{Status: core.StatusNoTarget, Messages: []string{MsgNoTarget}}
	}

	enforce := s.deps.Settings.RequireOwnership
	if enforce && target.OwnerID() != t.PlayerID {
		msg := MsgNotOwnedDeployed
		if target.Kind() == core.KindStructure {
			msg = MsgNotOwnedBlock
		}
		s.logger.DebugContext(ctx, "target not owned",
			"target", target.ID(),
			"owner", target.OwnerID())
		return Feedback{Status: core.StatusNotOwned, Messages: []string{msg}}
	}

	rec := &core.Removal{
		Time:       s.now(),
		PlayerID:   t.PlayerID,
		Stage:      stage,
		TargetID:   target.ID(),
		TargetKind: target.Kind(),
		Position:   target.Position(),
	}

	var fb Feedback
	if target.Kind() == core.KindStructure && s.deps.Sessions.IsMassRemove(t.PlayerID) {
		stats := s.walker.Walk(target, t.PlayerID, enforce)
		rec.Mode = core.ModeMass
		rec.Removed = stats.Removed
		rec.Visited = stats.Visited
		rec.Skipped = stats.Skipped
		fb = Feedback{
			Status:   core.StatusRemoved,
			Count:    stats.Removed,
			Messages: []string{fmt.Sprintf("Removed %d connected building blocks.", stats.Removed)},
		}
	} else {
		target.Destroy()
		rec.Mode = core.ModeSingle
		rec.Removed = 1
		rec.Visited = 1
		fb = Feedback{Status: core.StatusRemoved, Count: 1}
	}

	s.removed.Add(int64(rec.Removed))
	s.logger.InfoContext(ctx, "removal handled",
		"mode", string(rec.Mode),
		"stage", stage,
		"target", rec.TargetID,
		"kind", rec.TargetKind.String(),
		"removed", rec.Removed)

	if err := s.deps.Backend.RecordRemoval(rec); err != nil {
		s.logger.ErrorContext(ctx, "recording removal failed", "error", err)
	}
	return fb
}

// HandleRemoveCommand handles "/remove <args>". Only "all" (any case) is
// accepted; it flips the participant's mass removal mode.
func (s *Service) HandleRemoveCommand(playerID uint64, args []string) Feedback {
	if len(args) == 0 || !strings.EqualFold(strings.TrimSpace(args[0]), "all") {
		return Feedback{Status: core.StatusUsage, Messages: []string{MsgUsage}}
	}

	enabled := s.deps.Sessions.Toggle(playerID)
	ctx := playerContext(playerID)

	var fb Feedback
	if enabled {
		notice := RemoveAllNotice()
		s.deps.Overlay.Hide(playerID, notice.Panel)
		s.deps.Overlay.Show(playerID, notice)
		fb = Feedback{Status: core.StatusToggledOn, Messages: []string{MsgMassEnabled}}
	} else {
		s.deps.Overlay.Hide(playerID, PanelRemoveAll, PanelRemoveAllText)
		fb = Feedback{Status: core.StatusToggledOff, Messages: []string{MsgMassDisabled}}
	}

	s.logger.InfoContext(ctx, "mass removal toggled", "enabled", enabled)

	change := &core.ModeChange{Time: s.now(), PlayerID: playerID, Enabled: enabled}
	if err := s.deps.Backend.RecordModeChange(change); err != nil {
		s.logger.ErrorContext(ctx, "recording mode change failed", "error", err)
	}
	return fb
}

// HandleDisconnect drops the participant's session. It reports whether mass
// removal was on at the time.
func (s *Service) HandleDisconnect(playerID uint64) bool {
	wasOn := s.deps.Sessions.Forget(playerID)
	if wasOn {
		s.deps.Overlay.Hide(playerID, PanelRemoveAll, PanelRemoveAllText)
	}
	s.logger.DebugContext(playerContext(playerID), "session discarded", "massRemove", wasOn)
	return wasOn
}

func playerContext(playerID uint64) context.Context {
	return logging.WithContextAttrs(context.Background(), slog.Uint64("player", playerID))
}
