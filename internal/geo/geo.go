package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kinasplayground/hammerremove/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// World positions are local simulation units, stored as XYZ points so the
// sqlite and postgres audit tables share one WKB column format.

// ErrInvalidVector is returned when a vector string cannot be parsed.
var ErrInvalidVector = errors.New("invalid vector provided")

// Vec3FromString parses "x,y,z" into a vector. Two components are accepted
// and leave Z at zero. NaN and infinite components are rejected.
func Vec3FromString(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return core.Vec3{}, ErrInvalidVector
	}
	var v core.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return core.Vec3{}, ErrInvalidVector
		}
		v[i] = f
	}
	return v, nil
}

// Vec3String formats a vector the way Vec3FromString reads it.
func Vec3String(v core.Vec3) string {
	return strconv.FormatFloat(v[0], 'f', -1, 64) + "," +
		strconv.FormatFloat(v[1], 'f', -1, 64) + "," +
		strconv.FormatFloat(v[2], 'f', -1, 64)
}

// PointFromVec3 converts a world position to an XYZ point.
func PointFromVec3(v core.Vec3) (geom.Point, error) {
	point, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: v[0], Y: v[1]},
		Z:    v[2],
		Type: geom.DimXYZ,
	})
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXYZ), fmt.Errorf("position %s: %w", Vec3String(v), err)
	}
	return point, nil
}

// Vec3FromPoint is the inverse of PointFromVec3. Empty points map to the origin.
func Vec3FromPoint(p geom.Point) core.Vec3 {
	c, ok := p.Coordinates()
	if !ok {
		return core.Vec3{}
	}
	return core.Vec3{c.X, c.Y, c.Z}
}
