package removal

import (
	"log/slog"

	"github.com/kinasplayground/hammerremove/internal/queue"
	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Stats summarizes one connected walk.
type Stats struct {
	Removed int // pieces destroyed
	Visited int // pieces dequeued, including skipped ones
	Skipped int // pieces left standing (dead or owned by someone else)
}

// Walker removes a structure piece and every structure piece reachable from
// it through proximity.
type Walker struct {
	world         core.World
	connectRadius float64
	metrics       *metrics
	logger        *slog.Logger
}

// NewWalker creates a walker over world. Two pieces are adjacent when their
// positions lie within connectRadius of each other.
func NewWalker(world core.World, connectRadius float64, logger *slog.Logger) (*Walker, error) {
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{
		world:         world,
		connectRadius: connectRadius,
		metrics:       m,
		logger:        logger,
	}, nil
}

// RemoveConnected walks from start and returns how many pieces were destroyed.
func (w *Walker) RemoveConnected(start core.Removable, ownerID uint64, enforceOwnership bool) int {
	return w.Walk(start, ownerID, enforceOwnership).Removed
}

// Walk runs a breadth-first removal from start.
//
// Every piece is dequeued at most once. A piece that is no longer alive is
// skipped and not expanded. When enforceOwnership is set, a piece owned by
// someone other than ownerID stays standing but its neighbors are still
// explored, so one foreign piece does not split the walk.
func (w *Walker) Walk(start core.Removable, ownerID uint64, enforceOwnership bool) Stats {
	var stats Stats
	if start == nil {
		return stats
	}

	visited := map[uint64]struct{}{start.ID(): {}}
	frontier := queue.New[core.Removable]()
	frontier.Push(start)

	for {
		piece, ok := frontier.Pop()
		if !ok {
			break
		}
		stats.Visited++

		if !piece.Alive() {
			stats.Skipped++
			continue
		}

		pos := piece.Position()
		if enforceOwnership && piece.OwnerID() != ownerID {
			stats.Skipped++
		} else {
			piece.Destroy()
			stats.Removed++
		}

		for _, n := range w.world.QueryNearby(pos, w.connectRadius, core.KindStructure) {
			if n == nil || n.Kind() != core.KindStructure || !Eligible(n) {
				continue
			}
			if _, seen := visited[n.ID()]; seen {
				continue
			}
			visited[n.ID()] = struct{}{}
			frontier.Push(n)
		}
	}

	w.metrics.walked(stats)
	w.logger.Debug("connected walk finished",
		"start", start.ID(),
		"owner", ownerID,
		"removed", stats.Removed,
		"visited", stats.Visited,
		"skipped", stats.Skipped)

	return stats
}
