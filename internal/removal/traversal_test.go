package removal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

const owner = uint64(76561198000000001)

func newTestWalker(t *testing.T, w core.World) *Walker {
	t.Helper()
	wk, err := NewWalker(w, 3, nil)
	require.NoError(t, err)
	return wk
}

// chain lays out n structure pieces 2 units apart along the x axis.
func chain(n int, ownerOf func(i int) uint64) []*piece {
	out := make([]*piece, n)
	for i := range out {
		out[i] = structure(uint64(i+1), ownerOf(i), float64(i*2))
	}
	return out
}

func sameOwner(int) uint64 { return owner }

func TestWalk_IsolatedStart(t *testing.T) {
	start := structure(1, owner, 0)
	w := newFakeWorld(start)

	stats := newTestWalker(t, w).Walk(start, owner, true)
	assert.Equal(t, Stats{Removed: 1, Visited: 1}, stats)
	assert.False(t, start.alive)
}

func TestWalk_IsolatedForeignStart(t *testing.T) {
	start := structure(1, 99, 0)
	w := newFakeWorld(start)

	stats := newTestWalker(t, w).Walk(start, owner, true)
	assert.Equal(t, 0, stats.Removed)
	assert.Equal(t, 1, stats.Skipped)
	assert.True(t, start.alive)
}

func TestWalk_NeighborDestroyedWhileQueued(t *testing.T) {
	start := structure(1, owner, 0)
	right := structure(2, owner, 2)
	left := structure(3, owner, -1.5) // nearer, so dequeued before right
	beyond := structure(4, owner, 4) // only reachable through right
	w := newFakeWorld(start, right, left, beyond)
	w.afterNearby = func(call int) {
		// second query expands left; right is already queued by then
		if call == 2 {
			right.alive = false
		}
	}

	stats := newTestWalker(t, w).Walk(start, owner, true)

	assert.Equal(t, Stats{Removed: 2, Visited: 3, Skipped: 1}, stats)
	assert.Zero(t, right.destroy, "stale piece is not destroyed again")
	assert.Equal(t, 1, left.destroy)
	assert.True(t, beyond.alive, "stale piece is not expanded")
	assert.Equal(t, 2, w.nearbyCalls)
}

func TestWalk_ChainRemovesAll(t *testing.T) {
	pieces := chain(5, sameOwner)
	w := newFakeWorld(pieces...)

	n := newTestWalker(t, w).RemoveConnected(pieces[0], owner, true)
	assert.Equal(t, 5, n)
	for _, p := range pieces {
		assert.Equal(t, 1, p.destroy, "piece %d destroyed exactly once", p.id)
	}
}

func TestWalk_StartingMidChain(t *testing.T) {
	pieces := chain(5, sameOwner)
	w := newFakeWorld(pieces...)

	n := newTestWalker(t, w).RemoveConnected(pieces[2], owner, true)
	assert.Equal(t, 5, n)
}

func TestWalk_ForeignPieceIsPassThrough(t *testing.T) {
	pieces := chain(3, func(i int) uint64 {
		if i == 1 {
			return 99
		}
		return owner
	})
	w := newFakeWorld(pieces...)

	stats := newTestWalker(t, w).Walk(pieces[0], owner, true)
	assert.Equal(t, 2, stats.Removed)
	assert.Equal(t, 3, stats.Visited)
	assert.Equal(t, 1, stats.Skipped)
	assert.True(t, pieces[1].alive, "foreign piece must survive")
	assert.False(t, pieces[2].alive, "piece behind the foreign one is still reached")
}

func TestWalk_OwnershipNotEnforced(t *testing.T) {
	pieces := chain(3, func(i int) uint64 { return uint64(100 + i) })
	w := newFakeWorld(pieces...)

	n := newTestWalker(t, w).RemoveConnected(pieces[0], owner, false)
	assert.Equal(t, 3, n)
}

func TestWalk_SecondRunRemovesNothing(t *testing.T) {
	pieces := chain(4, sameOwner)
	w := newFakeWorld(pieces...)
	wk := newTestWalker(t, w)

	require.Equal(t, 4, wk.RemoveConnected(pieces[0], owner, true))
	assert.Equal(t, 0, wk.RemoveConnected(pieces[0], owner, true))
}

func TestWalk_GapStopsTheWalk(t *testing.T) {
	a := structure(1, owner, 0)
	b := structure(2, owner, 2)
	island := structure(3, owner, 10)
	w := newFakeWorld(a, b, island)

	stats := newTestWalker(t, w).Walk(a, owner, true)
	assert.Equal(t, 2, stats.Removed)
	assert.True(t, island.alive)
}

func TestWalk_IgnoresNonStructureNeighbors(t *testing.T) {
	start := structure(1, owner, 0)
	box := &piece{id: 2, owner: owner, pos: core.Vec3{1, 0, 0}, kind: core.KindDeployable, alive: true}
	w := newFakeWorld(start, box)

	stats := newTestWalker(t, w).Walk(start, owner, true)
	assert.Equal(t, 1, stats.Removed)
	assert.True(t, box.alive)
}

func TestWalk_VisitedEqualsProximityClosure(t *testing.T) {
	// 3x3 grid, 2 units apart: one component of 9 pieces.
	var pieces []*piece
	id := uint64(1)
	for x := 0; x < 3; x++ {
		for z := 0; z < 3; z++ {
			pieces = append(pieces, &piece{
				id: id, owner: owner, kind: core.KindStructure, alive: true,
				pos: core.Vec3{float64(x * 2), 0, float64(z * 2)},
			})
			id++
		}
	}
	w := newFakeWorld(pieces...)

	stats := newTestWalker(t, w).Walk(pieces[4], owner, true)
	assert.Equal(t, 9, stats.Visited)
	assert.Equal(t, 9, stats.Removed)
}

func TestWalk_NilStart(t *testing.T) {
	w := newFakeWorld()
	assert.Equal(t, Stats{}, newTestWalker(t, w).Walk(nil, owner, true))
	assert.Zero(t, w.nearbyCalls)
}
