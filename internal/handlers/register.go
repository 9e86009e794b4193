package handlers

import (
	"fmt"

	"github.com/kinasplayground/hammerremove/internal/dispatcher"
	"github.com/kinasplayground/hammerremove/internal/geo"
	"github.com/kinasplayground/hammerremove/internal/util"
)

// Host call commands.
const (
	CmdHammer     = ":HAMMER:"
	CmdRemove     = ":REMOVE:"
	CmdDisconnect = ":PLAYER:DISCONNECT:"
	CmdTotals     = ":TOTALS:"
	CmdHistory    = ":HISTORY:"
)

// RegisterHandlers wires the service into d.
//
//	:HAMMER:|player|x,y,z|dx,dy,dz|heldItem
//	:REMOVE:|player|arg...
//	:PLAYER:DISCONNECT:|player
//	:TOTALS:
//	:HISTORY:|player
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(CmdHammer, s.handleHammerEvent, dispatcher.MinArgs(3), dispatcher.Logged())
	d.Register(CmdRemove, s.handleRemoveEvent, dispatcher.MinArgs(1), dispatcher.Logged())
	d.Register(CmdDisconnect, s.handleDisconnectEvent, dispatcher.MinArgs(1), dispatcher.Logged())
	d.Register(CmdTotals, func(dispatcher.Event) (any, error) {
		return s.Totals(), nil
	})
	d.Register(CmdHistory, s.handleHistoryEvent, dispatcher.MinArgs(1))
}

func (s *Service) handleHammerEvent(e dispatcher.Event) (any, error) {
	playerID, err := util.ParsePlayerID(e.Args[0])
	if err != nil {
		return nil, err
	}
	origin, err := geo.Vec3FromString(e.Args[1])
	if err != nil {
		return nil, fmt.Errorf("origin %q: %w", e.Args[1], err)
	}
	direction, err := geo.Vec3FromString(e.Args[2])
	if err != nil {
		return nil, fmt.Errorf("direction %q: %w", e.Args[2], err)
	}

	var held string
	if len(e.Args) > 3 {
		held = e.Args[3]
	}

	return s.HandleHammer(Trigger{
		PlayerID:  playerID,
		Origin:    origin,
		Direction: direction,
		HeldItem:  held,
	}), nil
}

func (s *Service) handleRemoveEvent(e dispatcher.Event) (any, error) {
	playerID, err := util.ParsePlayerID(e.Args[0])
	if err != nil {
		return nil, err
	}
	return s.HandleRemoveCommand(playerID, e.Args[1:]), nil
}

func (s *Service) handleDisconnectEvent(e dispatcher.Event) (any, error) {
	playerID, err := util.ParsePlayerID(e.Args[0])
	if err != nil {
		return nil, err
	}
	return s.HandleDisconnect(playerID), nil
}

func (s *Service) handleHistoryEvent(e dispatcher.Event) (any, error) {
	playerID, err := util.ParsePlayerID(e.Args[0])
	if err != nil {
		return nil, err
	}
	return s.History(playerID)
}
