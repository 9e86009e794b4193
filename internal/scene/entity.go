package scene

import (
	"sync/atomic"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

// defaultLayers maps each kind to the collision layer it is spawned on.
var defaultLayers = map[core.Kind]core.Layer{
	core.KindStructure:  core.LayerConstruction,
	core.KindDeployable: core.LayerDeployed,
	core.KindPlayer:     core.LayerPlayer,
	core.KindVehicle:    core.LayerVehicle,
	core.KindWorldItem:  core.LayerDebris,
	core.KindCorpse:     core.LayerRagdoll,
}

// Spec describes an entity to spawn.
type Spec struct {
	Kind        core.Kind
	Owner       uint64
	Position    core.Vec3
	HalfExtents core.Vec3
	// Layer overrides the kind's default collision layer when non-zero.
	Layer core.Layer
}

// Entity is a removable object living in a Scene.
type Entity struct {
	id     uint64
	owner  uint64
	kind   core.Kind
	layer  core.Layer
	bounds box
	alive  atomic.Bool
	scene  *Scene
}

var _ core.Removable = (*Entity)(nil)

func (e *Entity) ID() uint64          { return e.id }
func (e *Entity) OwnerID() uint64     { return e.owner }
func (e *Entity) Position() core.Vec3 { return e.bounds.center }
func (e *Entity) Kind() core.Kind     { return e.kind }
func (e *Entity) Layer() core.Layer   { return e.layer }
func (e *Entity) Alive() bool         { return e.alive.Load() }

// Destroy kills the entity and takes it out of the scene. Repeated calls are no-ops.
func (e *Entity) Destroy() {
	if !e.alive.CompareAndSwap(true, false) {
		return
	}
	e.scene.remove(e)
}
