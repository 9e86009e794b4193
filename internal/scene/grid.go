package scene

import "math"

type cellKey struct {
	cx int32
	cz int32
}

// grid buckets entity IDs by their position on the ground plane.
// Not safe for concurrent use; Scene guards it.
type grid struct {
	size  float64
	cells map[cellKey]map[uint64]struct{}
}

func newGrid(size float64) *grid {
	return &grid{
		size:  size,
		cells: make(map[cellKey]map[uint64]struct{}),
	}
}

// coord floors so that -0.5 and 0.5 land in different cells. Coordinates
// beyond the int32 range clamp to the edge cells.
func (g *grid) coord(v float64) int32 {
	c := math.Floor(v / g.size)
	switch {
	case math.IsNaN(c):
		return 0
	case c < math.MinInt32:
		return math.MinInt32
	case c > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(c)
}

func (g *grid) key(x, z float64) cellKey {
	return cellKey{cx: g.coord(x), cz: g.coord(z)}
}

func (g *grid) add(id uint64, x, z float64) {
	k := g.key(x, z)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[uint64]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

func (g *grid) remove(id uint64, x, z float64) {
	k := g.key(x, z)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// around returns the IDs in every cell touched by the square of half-width
// radius centred on (x, z). Caller does the exact distance check.
// When the square spans more cells than are occupied, the occupied cells are
// scanned instead, so the cost never exceeds the number of entities.
func (g *grid) around(x, z, radius float64) []uint64 {
	minX, maxX := g.coord(x-radius), g.coord(x+radius)
	minZ, maxZ := g.coord(z-radius), g.coord(z+radius)

	var out []uint64
	span := (float64(maxX) - float64(minX) + 1) * (float64(maxZ) - float64(minZ) + 1)
	if span > float64(len(g.cells)) {
		for k, cell := range g.cells {
			if k.cx < minX || k.cx > maxX || k.cz < minZ || k.cz > maxZ {
				continue
			}
			for id := range cell {
				out = append(out, id)
			}
		}
		return out
	}

	// int64 counters so a range ending at MaxInt32 still terminates
	for cx := int64(minX); cx <= int64(maxX); cx++ {
		for cz := int64(minZ); cz <= int64(maxZ); cz++ {
			for id := range g.cells[cellKey{cx: int32(cx), cz: int32(cz)}] {
				out = append(out, id)
			}
		}
	}
	return out
}
