// Package bvh implements C9: a flat bounding-volume store keyed by an
// opaque id, rather than a tree. Per spec.md §4.9, "the current design
// accepts O(N) and O(N²) costs; the interface is stable so a tree can
// be substituted without touching callers" — so BVH exposes the
// add/clear/frustum/AABB/all-pairs operations a tree-backed
// implementation would, backed here by a dense slice and a key→index
// map (the same id-to-slot idiom as the teacher's ECS archetype
// storage in ecs.go).
package bvh

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a.Min.X(), b.Min.X()), min(a.Min.Y(), b.Min.Y()), min(a.Min.Z(), b.Min.Z())},
		Max: mgl32.Vec3{max(a.Max.X(), b.Max.X()), max(a.Max.Y(), b.Max.Y()), max(a.Max.Z(), b.Max.Z())},
	}
}

// Plane is one face of a view frustum: the equation n·p + d = 0, with
// n the inward normal (points inside the frustum satisfy n·p + d >= 0).
// Packed as a Vec4 (n.x, n.y, n.z, d) matching the standard
// Gribb–Hartmann extraction output SPEC_FULL names.
type Plane = mgl32.Vec4

// Frustum is six planes, in any order; Intersects runs the
// positive-vertex test against each.
type Frustum [6]Plane

// Intersects reports whether aabb has any point on the positive side
// of every frustum plane (the standard "positive vertex" AABB-frustum
// test: for each plane, pick the box corner furthest along the plane
// normal and test only that corner).
func (f Frustum) Intersects(box AABB) bool {
	for _, p := range f {
		px := box.Min.X()
		if p.X() >= 0 {
			px = box.Max.X()
		}
		py := box.Min.Y()
		if p.Y() >= 0 {
			py = box.Max.Y()
		}
		pz := box.Min.Z()
		if p.Z() >= 0 {
			pz = box.Max.Z()
		}
		if p.X()*px+p.Y()*py+p.Z()*pz+p.W() < 0 {
			return false
		}
	}
	return true
}

// BVH is a flat AABB store keyed by an opaque comparable id (typically
// a uuid string, matching the rest of the module's opaque-id idiom).
type BVH[ID comparable] struct {
	ids     []ID
	boxes   []AABB
	indexOf map[ID]int
}

// New constructs an empty BVH.
func New[ID comparable]() *BVH[ID] {
	return &BVH[ID]{indexOf: make(map[ID]int)}
}

// Add inserts or updates the AABB for id.
func (b *BVH[ID]) Add(id ID, box AABB) {
	if idx, ok := b.indexOf[id]; ok {
		b.boxes[idx] = box
		return
	}
	b.indexOf[id] = len(b.ids)
	b.ids = append(b.ids, id)
	b.boxes = append(b.boxes, box)
}

// Remove deletes id's AABB, if present, via swap-remove (O(1), reorders
// the last element into the removed slot).
func (b *BVH[ID]) Remove(id ID) {
	idx, ok := b.indexOf[id]
	if !ok {
		return
	}
	last := len(b.ids) - 1
	b.ids[idx] = b.ids[last]
	b.boxes[idx] = b.boxes[last]
	b.indexOf[b.ids[idx]] = idx

	b.ids = b.ids[:last]
	b.boxes = b.boxes[:last]
	delete(b.indexOf, id)
}

// Clear removes every entry.
func (b *BVH[ID]) Clear() {
	b.ids = b.ids[:0]
	b.boxes = b.boxes[:0]
	for k := range b.indexOf {
		delete(b.indexOf, k)
	}
}

// Len reports how many AABBs are stored.
func (b *BVH[ID]) Len() int { return len(b.ids) }

// AABB returns the box stored for id, if any.
func (b *BVH[ID]) AABB(id ID) (AABB, bool) {
	idx, ok := b.indexOf[id]
	if !ok {
		return AABB{}, false
	}
	return b.boxes[idx], true
}

// QueryAABB returns every id whose box overlaps query, O(N).
func (b *BVH[ID]) QueryAABB(query AABB) []ID {
	var out []ID
	for i, box := range b.boxes {
		if box.Overlaps(query) {
			out = append(out, b.ids[i])
		}
	}
	return out
}

// QueryFrustum returns every id whose box intersects the frustum, O(N).
func (b *BVH[ID]) QueryFrustum(f Frustum) []ID {
	var out []ID
	for i, box := range b.boxes {
		if f.Intersects(box) {
			out = append(out, b.ids[i])
		}
	}
	return out
}

// Pair is one overlapping id pair from AllPairsOverlap. Ids of an
// arbitrary comparable type have no defined ordering, so A is simply the
// id stored in the earlier slot of the BVH (insertion order, except
// where Remove has swapped the last entry into a freed slot).
type Pair[ID comparable] struct {
	A, B ID
}

// AllPairsOverlap enumerates every overlapping pair, O(N²), per §4.9's
// accepted cost model.
func (b *BVH[ID]) AllPairsOverlap() []Pair[ID] {
	var out []Pair[ID]
	for i := 0; i < len(b.boxes); i++ {
		for j := i + 1; j < len(b.boxes); j++ {
			if b.boxes[i].Overlaps(b.boxes[j]) {
				out = append(out, Pair[ID]{A: b.ids[i], B: b.ids[j]})
			}
		}
	}
	return out
}
