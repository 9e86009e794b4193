package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a world-space position or direction.
type Vec3 = mgl64.Vec3

// Finite reports whether every component of v is neither NaN nor infinite.
func Finite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Kind discriminates what a scene object is.
type Kind uint8

const (
	KindStructure  Kind = iota // building block: wall, floor, foundation
	KindDeployable             // placed item: box, furnace, door
	KindPlayer
	KindVehicle
	KindWorldItem // loose item lying in the world
	KindCorpse
)

var kindNames = map[Kind]string{
	KindStructure:  "structure",
	KindDeployable: "deployable",
	KindPlayer:     "player",
	KindVehicle:    "vehicle",
	KindWorldItem:  "world_item",
	KindCorpse:     "corpse",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Layer is a collision layer bitmask.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerDeployed
	LayerConstruction
	LayerTerrain
	LayerPlayer
	LayerVehicle
	LayerDebris
	LayerRagdoll

	// ResolveMask is what the exact and sweep probes look through.
	ResolveMask = LayerDefault | LayerDeployed | LayerConstruction
	AllLayers   = ^Layer(0)
)

// Has reports whether l shares any bit with mask.
func (l Layer) Has(mask Layer) bool {
	return l&mask != 0
}

// Removable is anything in the scene that can be destroyed.
// The host owns storage and lifecycle; callers only borrow references.
type Removable interface {
	ID() uint64
	// OwnerID is 0 for unowned objects.
	OwnerID() uint64
	Position() Vec3
	Kind() Kind
	Alive() bool
	Destroy()
}

// Hit is one intersection reported by a cast.
// Object is nil when the collider belongs to static geometry.
type Hit struct {
	Object   Removable
	Distance float64
	Layer    Layer
}

// World is the spatial query capability of the host simulation.
// Returned lists are ordered ascending by distance from the query origin.
type World interface {
	CastRay(origin, direction Vec3, maxDistance float64, mask Layer) []Hit
	CastSphere(origin, direction Vec3, radius, maxDistance float64, mask Layer) []Hit
	// QueryNearby returns live objects whose position lies within radius.
	// An empty kinds list matches every kind.
	QueryNearby(position Vec3, radius float64, kinds ...Kind) []Removable
}
