package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// box is an axis-aligned bounding box.
type box struct {
	center mgl64.Vec3
	half   mgl64.Vec3
}

func (b box) min() mgl64.Vec3 { return b.center.Sub(b.half) }
func (b box) max() mgl64.Vec3 { return b.center.Add(b.half) }

// inflate grows the box by r on every axis. Sweeping a sphere against a box
// is approximated as a ray against the inflated box.
func (b box) inflate(r float64) box {
	return box{center: b.center, half: b.half.Add(mgl64.Vec3{r, r, r})}
}

// intersect runs the slab test for a ray with unit direction dir and returns
// the entry distance. A ray starting inside the box does not hit it, so the
// caster's own collider never blocks the view.
func (b box) intersect(origin, dir mgl64.Vec3, maxDistance float64) (float64, bool) {
	lo, hi := b.min(), b.max()
	tmin, tmax := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	// tmin < 0 covers both a box behind the origin and one around it
	if !(tmin >= 0) || tmin > maxDistance {
		return 0, false
	}
	return tmin, true
}
