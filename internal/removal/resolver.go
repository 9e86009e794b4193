package removal

import (
	"log/slog"
	"sort"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

// Probe stage names, also used as the "stage" metric attribute.
const (
	StageExact  = "exact"
	StageSweep  = "sweep"
	StageDirect = "direct"
	StageNone   = "none"
)

// Ray is a viewpoint ray. Direction need not be normalized.
type Ray struct {
	Origin    core.Vec3
	Direction core.Vec3
}

// probe is one geometric query in the fallback order.
type probe struct {
	name string
	run  func(w core.World, r Ray) core.Removable
}

// Resolver turns a viewpoint ray into at most one removable object.
type Resolver struct {
	world       core.World
	maxDistance float64
	probeRadius float64
	probes      []probe
	metrics     *metrics
	logger      *slog.Logger
}

// NewResolver creates a resolver over world. maxDistance and probeRadius must
// already be validated (positive).
func NewResolver(world core.World, maxDistance, probeRadius float64, logger *slog.Logger) (*Resolver, error) {
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		world:       world,
		maxDistance: maxDistance,
		probeRadius: probeRadius,
		metrics:     m,
		logger:      logger,
	}
	r.probes = []probe{
		{name: StageExact, run: r.exact},
		{name: StageSweep, run: r.sweep},
		{name: StageDirect, run: r.direct},
	}
	return r, nil
}

// Resolve runs the probes in order and returns the first eligible object.
// A zero-length or non-finite ray never queries the world.
func (r *Resolver) Resolve(ray Ray) (core.Removable, bool) {
	obj, _ := r.ResolveStage(ray)
	return obj, obj != nil
}

// ResolveStage is Resolve that also names the probe which produced the result.
func (r *Resolver) ResolveStage(ray Ray) (core.Removable, string) {
	if !core.Finite(ray.Origin) || !core.Finite(ray.Direction) || ray.Direction.Len() == 0 {
		return nil, StageNone
	}
	for _, p := range r.probes {
		if obj := p.run(r.world, ray); obj != nil {
			r.metrics.resolved(p.name)
			r.logger.Debug("target resolved",
				"stage", p.name,
				"id", obj.ID(),
				"kind", obj.Kind().String())
			return obj, p.name
		}
	}
	return nil, StageNone
}

func (r *Resolver) exact(w core.World, ray Ray) core.Removable {
	return firstEligible(w.CastRay(ray.Origin, ray.Direction, r.maxDistance, core.ResolveMask))
}

func (r *Resolver) sweep(w core.World, ray Ray) core.Removable {
	return firstEligible(w.CastSphere(ray.Origin, ray.Direction, r.probeRadius, r.maxDistance, core.ResolveMask))
}

// direct only accepts the nearest hit on any layer, and only if it is structure.
func (r *Resolver) direct(w core.World, ray Ray) core.Removable {
	hits := w.CastRay(ray.Origin, ray.Direction, r.maxDistance, core.AllLayers)
	if len(hits) == 0 {
		return nil
	}
	nearest := hits[0]
	for _, h := range hits[1:] {
		if h.Distance < nearest.Distance {
			nearest = h
		}
	}
	obj := nearest.Object
	if obj == nil || !Eligible(obj) || obj.Kind() != core.KindStructure {
		return nil
	}
	return obj
}

func firstEligible(hits []core.Hit) core.Removable {
	if len(hits) == 0 {
		return nil
	}
	sorted := make([]core.Hit, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})
	for _, h := range sorted {
		if h.Object != nil && Eligible(h.Object) {
			return h.Object
		}
	}
	return nil
}
