// Package scene is an in-memory world used by the simulator binary and by
// tests. Colliders are axis-aligned boxes; proximity queries go through a
// uniform grid over entity centres.
package scene

import (
	"sort"
	"sync"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

// DefaultCellSize is the grid cell edge used when none is configured.
const DefaultCellSize = 4.0

type static struct {
	bounds box
	layer  core.Layer
}

// Scene implements core.World.
type Scene struct {
	mu       sync.RWMutex
	nextID   uint64
	entities map[uint64]*Entity
	statics  []static
	grid     *grid
}

var _ core.World = (*Scene)(nil)

// New creates an empty scene. A non-positive cellSize uses DefaultCellSize.
func New(cellSize float64) *Scene {
	if !(cellSize > 0) {
		cellSize = DefaultCellSize
	}
	return &Scene{
		entities: make(map[uint64]*Entity),
		grid:     newGrid(cellSize),
	}
}

// Spawn adds a live entity and returns it.
func (s *Scene) Spawn(spec Spec) *Entity {
	layer := spec.Layer
	if layer == 0 {
		layer = defaultLayers[spec.Kind]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e := &Entity{
		id:     s.nextID,
		owner:  spec.Owner,
		kind:   spec.Kind,
		layer:  layer,
		bounds: box{center: spec.Position, half: abs(spec.HalfExtents)},
		scene:  s,
	}
	e.alive.Store(true)
	s.entities[e.id] = e
	s.grid.add(e.id, spec.Position.X(), spec.Position.Z())
	return e
}

// AddStatic adds non-removable geometry such as terrain or rock.
func (s *Scene) AddStatic(center, halfExtents core.Vec3, layer core.Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statics = append(s.statics, static{bounds: box{center: center, half: abs(halfExtents)}, layer: layer})
}

// Get returns a live entity by ID.
func (s *Scene) Get(id uint64) (*Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// CountByKind returns live entity counts per kind.
func (s *Scene) CountByKind() map[core.Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[core.Kind]int)
	for _, e := range s.entities {
		out[e.kind]++
	}
	return out
}

func (s *Scene) remove(e *Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[e.id]; !ok {
		return
	}
	delete(s.entities, e.id)
	s.grid.remove(e.id, e.bounds.center.X(), e.bounds.center.Z())
}

// CastRay returns every collider on mask hit within maxDistance, nearest first.
func (s *Scene) CastRay(origin, direction core.Vec3, maxDistance float64, mask core.Layer) []core.Hit {
	return s.cast(origin, direction, 0, maxDistance, mask)
}

// CastSphere is CastRay with a sphere of the given radius swept along the ray.
func (s *Scene) CastSphere(origin, direction core.Vec3, radius, maxDistance float64, mask core.Layer) []core.Hit {
	return s.cast(origin, direction, radius, maxDistance, mask)
}

func (s *Scene) cast(origin, direction core.Vec3, radius, maxDistance float64, mask core.Layer) []core.Hit {
	if !core.Finite(origin) || !core.Finite(direction) || direction.Len() == 0 || !(maxDistance > 0) {
		return nil
	}
	dir := direction.Normalize()

	type ranked struct {
		hit core.Hit
		id  uint64
	}
	var found []ranked

	s.mu.RLock()
	for _, e := range s.entities {
		if !e.layer.Has(mask) {
			continue
		}
		if t, ok := e.bounds.inflate(radius).intersect(origin, dir, maxDistance); ok {
			found = append(found, ranked{hit: core.Hit{Object: e, Distance: t, Layer: e.layer}, id: e.id})
		}
	}
	for _, st := range s.statics {
		if !st.layer.Has(mask) {
			continue
		}
		if t, ok := st.bounds.inflate(radius).intersect(origin, dir, maxDistance); ok {
			found = append(found, ranked{hit: core.Hit{Distance: t, Layer: st.layer}})
		}
	}
	s.mu.RUnlock()

	// statics (id 0) sort ahead of entities on equal distance
	sort.Slice(found, func(i, j int) bool {
		if found[i].hit.Distance != found[j].hit.Distance {
			return found[i].hit.Distance < found[j].hit.Distance
		}
		return found[i].id < found[j].id
	})

	hits := make([]core.Hit, len(found))
	for i, f := range found {
		hits[i] = f.hit
	}
	return hits
}

// QueryNearby returns live entities whose centre lies within radius of
// position, nearest first. An empty kinds list matches every kind.
func (s *Scene) QueryNearby(position core.Vec3, radius float64, kinds ...core.Kind) []core.Removable {
	if !(radius >= 0) || !core.Finite(position) {
		return nil
	}

	s.mu.RLock()
	var near []*Entity
	for _, id := range s.grid.around(position.X(), position.Z(), radius) {
		e := s.entities[id]
		if e == nil || !e.Alive() || !matchKind(e.kind, kinds) {
			continue
		}
		if e.bounds.center.Sub(position).Len() <= radius {
			near = append(near, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(near, func(i, j int) bool {
		di := near[i].bounds.center.Sub(position).Len()
		dj := near[j].bounds.center.Sub(position).Len()
		if di != dj {
			return di < dj
		}
		return near[i].id < near[j].id
	})

	out := make([]core.Removable, len(near))
	for i, e := range near {
		out[i] = e
	}
	return out
}

func matchKind(k core.Kind, kinds []core.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func abs(v core.Vec3) core.Vec3 {
	for i := range v {
		if v[i] < 0 {
			v[i] = -v[i]
		}
	}
	return v
}
