package removal

import (
	"sort"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

type piece struct {
	id      uint64
	owner   uint64
	pos     core.Vec3
	kind    core.Kind
	alive   bool
	destroy int
}

func (p *piece) ID() uint64          { return p.id }
func (p *piece) OwnerID() uint64     { return p.owner }
func (p *piece) Position() core.Vec3 { return p.pos }
func (p *piece) Kind() core.Kind     { return p.kind }
func (p *piece) Alive() bool         { return p.alive }
func (p *piece) Destroy() {
	p.destroy++
	p.alive = false
}

func structure(id, owner uint64, x float64) *piece {
	return &piece{id: id, owner: owner, pos: core.Vec3{x, 0, 0}, kind: core.KindStructure, alive: true}
}

// fakeWorld answers casts from canned hit lists and proximity queries by
// brute force over its pieces.
type fakeWorld struct {
	pieces []*piece

	rayHits    map[core.Layer][]core.Hit
	sphereHits []core.Hit

	rayCalls    int
	sphereCalls int
	nearbyCalls int

	// afterNearby runs once a proximity query has built its result,
	// before the caller sees it.
	afterNearby func(call int)
}

func newFakeWorld(pieces ...*piece) *fakeWorld {
	return &fakeWorld{pieces: pieces, rayHits: map[core.Layer][]core.Hit{}}
}

func (w *fakeWorld) CastRay(_, _ core.Vec3, _ float64, mask core.Layer) []core.Hit {
	w.rayCalls++
	return w.rayHits[mask]
}

func (w *fakeWorld) CastSphere(_, _ core.Vec3, _, _ float64, _ core.Layer) []core.Hit {
	w.sphereCalls++
	return w.sphereHits
}

func (w *fakeWorld) QueryNearby(pos core.Vec3, radius float64, kinds ...core.Kind) []core.Removable {
	w.nearbyCalls++
	var out []*piece
	for _, p := range w.pieces {
		if !p.alive || p.pos.Sub(pos).Len() > radius {
			continue
		}
		if len(kinds) > 0 {
			match := false
			for _, k := range kinds {
				if p.kind == k {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].pos.Sub(pos).Len() < out[j].pos.Sub(pos).Len()
	})
	res := make([]core.Removable, len(out))
	for i, p := range out {
		res[i] = p
	}
	if w.afterNearby != nil {
		w.afterNearby(w.nearbyCalls)
	}
	return res
}
