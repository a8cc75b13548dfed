package bvh

import "math"

// SpatialHash is an optional broadphase accelerator for BVH's
// AllPairsOverlap query: instead of the O(N²) pairwise scan, candidate
// pairs are narrowed to ids sharing a grid cell first. Adapted from the
// teacher's SpatialHashGrid (mod_spatialgrid.go), generalized from a
// fixed EntityId key to any comparable id so it can key collidables,
// rigid bodies, or BVH entries alike.
type SpatialHash[ID comparable] struct {
	cellSize float32
	cells    map[uint64][]ID
}

// NewSpatialHash constructs an empty grid with the given cell size.
func NewSpatialHash[ID comparable](cellSize float32) *SpatialHash[ID] {
	return &SpatialHash[ID]{cellSize: cellSize, cells: make(map[uint64][]ID)}
}

// Clear removes every entry without reallocating the backing map.
func (g *SpatialHash[ID]) Clear() {
	for k := range g.cells {
		delete(g.cells, k)
	}
}

func (g *SpatialHash[ID]) cellIndex(pos float32) int {
	return int(math.Floor(float64(pos / g.cellSize)))
}

func (g *SpatialHash[ID]) hashKey(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}

// Insert registers id against every cell box overlaps.
func (g *SpatialHash[ID]) Insert(id ID, box AABB) {
	minX, maxX := g.cellIndex(box.Min.X()), g.cellIndex(box.Max.X())
	minY, maxY := g.cellIndex(box.Min.Y()), g.cellIndex(box.Max.Y())
	minZ, maxZ := g.cellIndex(box.Min.Z()), g.cellIndex(box.Max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := g.hashKey(x, y, z)
				g.cells[key] = append(g.cells[key], id)
			}
		}
	}
}

// QueryAABB returns every distinct id registered against a cell box
// overlaps, a broadphase candidate set (not filtered to exact overlap).
func (g *SpatialHash[ID]) QueryAABB(box AABB) []ID {
	minX, maxX := g.cellIndex(box.Min.X()), g.cellIndex(box.Max.X())
	minY, maxY := g.cellIndex(box.Min.Y()), g.cellIndex(box.Max.Y())
	minZ, maxZ := g.cellIndex(box.Min.Z()), g.cellIndex(box.Max.Z())

	seen := make(map[ID]struct{})
	var out []ID
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := g.hashKey(x, y, z)
				for _, id := range g.cells[key] {
					if _, ok := seen[id]; !ok {
						seen[id] = struct{}{}
						out = append(out, id)
					}
				}
			}
		}
	}
	return out
}

// CandidatePairsFromBVH rebuilds the grid from b's current contents and
// returns every pair of ids sharing at least one cell, narrowing
// BVH.AllPairsOverlap's O(N²) exact scan to only the pairs worth
// testing exactly.
func (g *SpatialHash[ID]) CandidatePairsFromBVH(b *BVH[ID]) []Pair[ID] {
	g.Clear()
	for i, id := range b.ids {
		g.Insert(id, b.boxes[i])
	}

	seenPair := make(map[[2]int]struct{})
	var out []Pair[ID]
	for _, cellIDs := range g.cells {
		for i := 0; i < len(cellIDs); i++ {
			for j := i + 1; j < len(cellIDs); j++ {
				ii, jj := b.indexOf[cellIDs[i]], b.indexOf[cellIDs[j]]
				if ii > jj {
					ii, jj = jj, ii
				}
				key := [2]int{ii, jj}
				if _, dup := seenPair[key]; dup {
					continue
				}
				seenPair[key] = struct{}{}
				if b.boxes[ii].Overlaps(b.boxes[jj]) {
					out = append(out, Pair[ID]{A: b.ids[ii], B: b.ids[jj]})
				}
			}
		}
	}
	return out
}
