package main

import (
	"fmt"
	"strconv"

	"github.com/kinasplayground/hammerremove/internal/dispatcher"
	"github.com/kinasplayground/hammerremove/internal/geo"
	"github.com/kinasplayground/hammerremove/internal/scene"
	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Simulator commands. They stand in for the host's own world state.
const (
	CmdSpawn  = ":SPAWN:"
	CmdStatic = ":STATIC:"
	CmdStatus = ":STATUS:"
)

// defaultHalfExtents is a 3x3 building block, 0.2 thick.
var defaultHalfExtents = core.Vec3{1.5, 0.1, 1.5}

// statusResponse is the :STATUS: reply.
type statusResponse struct {
	core.StatusReport
	Entities map[string]int `json:"entities"`
}

// registerSimHandlers adds the scene commands:
//
//	:SPAWN:|kind|owner|x,y,z[|hx,hy,hz]
//	:STATIC:|x,y,z|hx,hy,hz
//	:STATUS:
func (a *app) registerSimHandlers(d *dispatcher.Dispatcher) {
	d.Register(CmdSpawn, a.handleSpawn, dispatcher.MinArgs(3), dispatcher.Logged())
	d.Register(CmdStatic, a.handleStatic, dispatcher.MinArgs(2), dispatcher.Logged())
	d.Register(CmdStatus, func(dispatcher.Event) (any, error) {
		counts := a.world.CountByKind()
		entities := make(map[string]int, len(counts))
		for k, n := range counts {
			entities[k.String()] = n
		}
		return statusResponse{StatusReport: a.statusReport(), Entities: entities}, nil
	})
}

func (a *app) handleSpawn(e dispatcher.Event) (any, error) {
	kind, ok := core.ParseKind(e.Args[0])
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", e.Args[0])
	}
	owner, err := strconv.ParseUint(e.Args[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid owner %q: %w", e.Args[1], err)
	}
	pos, err := geo.Vec3FromString(e.Args[2])
	if err != nil {
		return nil, fmt.Errorf("position %q: %w", e.Args[2], err)
	}
	half := defaultHalfExtents
	if len(e.Args) > 3 && e.Args[3] != "" {
		if half, err = geo.Vec3FromString(e.Args[3]); err != nil {
			return nil, fmt.Errorf("half extents %q: %w", e.Args[3], err)
		}
	}

	ent := a.world.Spawn(scene.Spec{Kind: kind, Owner: owner, Position: pos, HalfExtents: half})
	return ent.ID(), nil
}

func (a *app) handleStatic(e dispatcher.Event) (any, error) {
	center, err := geo.Vec3FromString(e.Args[0])
	if err != nil {
		return nil, fmt.Errorf("center %q: %w", e.Args[0], err)
	}
	half, err := geo.Vec3FromString(e.Args[1])
	if err != nil {
		return nil, fmt.Errorf("half extents %q: %w", e.Args[1], err)
	}
	a.world.AddStatic(center, half, core.LayerTerrain)
	return nil, nil
}
