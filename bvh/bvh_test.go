package bvh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{Min: mgl32.Vec3{minX, minY, minZ}, Max: mgl32.Vec3{maxX, maxY, maxZ}}
}

func TestAABBOverlaps(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	b := box(0.5, 0.5, 0.5, 2, 2, 2)
	c := box(5, 5, 5, 6, 6, 6)

	if !a.Overlaps(b) {
		t.Fatalf("expected overlapping boxes to report overlap")
	}
	if a.Overlaps(c) {
		t.Fatalf("expected disjoint boxes to report no overlap")
	}
}

func TestAABBUnionContainsBoth(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	b := box(-1, -1, -1, 0.5, 0.5, 0.5)
	u := a.Union(b)

	if u.Min.X() != -1 || u.Max.X() != 1 {
		t.Fatalf("expected union to span both boxes, got %v", u)
	}
}

func TestBVHAddUpdateRemove(t *testing.T) {
	b := New[string]()
	b.Add("a", box(0, 0, 0, 1, 1, 1))
	if b.Len() != 1 {
		t.Fatalf("expected 1 entry after Add")
	}

	b.Add("a", box(5, 5, 5, 6, 6, 6))
	got, ok := b.AABB("a")
	if !ok || got.Min.X() != 5 {
		t.Fatalf("expected Add on an existing id to update its box, got %v", got)
	}

	b.Remove("a")
	if b.Len() != 0 {
		t.Fatalf("expected 0 entries after Remove")
	}
	if _, ok := b.AABB("a"); ok {
		t.Fatalf("expected AABB lookup to fail after Remove")
	}
}

func TestBVHRemoveSwapPreservesOtherEntries(t *testing.T) {
	b := New[string]()
	b.Add("a", box(0, 0, 0, 1, 1, 1))
	b.Add("b", box(1, 1, 1, 2, 2, 2))
	b.Add("c", box(2, 2, 2, 3, 3, 3))

	b.Remove("a")

	for _, id := range []string{"b", "c"} {
		if _, ok := b.AABB(id); !ok {
			t.Fatalf("expected %s to survive removal of a", id)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 remaining entries, got %d", b.Len())
	}
}

func TestBVHQueryAABB(t *testing.T) {
	b := New[string]()
	b.Add("hit", box(0, 0, 0, 1, 1, 1))
	b.Add("miss", box(10, 10, 10, 11, 11, 11))

	results := b.QueryAABB(box(0.5, 0.5, 0.5, 2, 2, 2))
	if len(results) != 1 || results[0] != "hit" {
		t.Fatalf("expected only 'hit' to match the query, got %v", results)
	}
}

func TestBVHAllPairsOverlap(t *testing.T) {
	b := New[string]()
	b.Add("a", box(0, 0, 0, 1, 1, 1))
	b.Add("b", box(0.5, 0.5, 0.5, 1.5, 1.5, 1.5))
	b.Add("c", box(10, 10, 10, 11, 11, 11))

	pairs := b.AllPairsOverlap()
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 overlapping pair, got %d", len(pairs))
	}
}

func TestFrustumIntersectsBoxInsidePlanes(t *testing.T) {
	// Six axis-aligned planes forming the cube [0,10]^3, normals pointing inward.
	f := Frustum{
		mgl32.Vec4{1, 0, 0, 0},
		mgl32.Vec4{-1, 0, 0, 10},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{0, -1, 0, 10},
		mgl32.Vec4{0, 0, 1, 0},
		mgl32.Vec4{0, 0, -1, 10},
	}

	inside := box(4, 4, 4, 5, 5, 5)
	outside := box(20, 20, 20, 21, 21, 21)

	if !f.Intersects(inside) {
		t.Fatalf("expected a box inside the frustum to intersect")
	}
	if f.Intersects(outside) {
		t.Fatalf("expected a box far outside the frustum not to intersect")
	}
}
