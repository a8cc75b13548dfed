package voxel

import "testing"

func TestSDFViewCoversHalo(t *testing.T) {
	o := NewObject(0.1, 1.0)
	o.Set(0, 0, 0, EmptyVoxel().WithType(1).WithSDF(50))
	o.ComputeAllDerivedState()

	cache := newSDFViewCache()
	view := cache.View(o, ChunkCoord{})

	d, ty := view.At(0, 0, 0)
	if ty != 1 || d != 50 {
		t.Errorf("expected the set voxel to appear in the view, got d=%d ty=%d", d, ty)
	}

	// One cell of halo padding past the chunk edge must still resolve.
	d, _ = view.At(-1, 0, 0)
	if d != EmptyVoxel().SignedDistance {
		t.Errorf("expected halo cell outside the chunk to read as empty, got %d", d)
	}
	d, _ = view.At(ChunkSize, 0, 0)
	if d != EmptyVoxel().SignedDistance {
		t.Errorf("expected halo cell past the chunk's far edge to read as empty, got %d", d)
	}
}

func TestSDFViewCacheInvalidatesOnGenerationChange(t *testing.T) {
	o := NewObject(0.1, 1.0)
	cache := newSDFViewCache()

	first := cache.View(o, ChunkCoord{})
	o.Set(2, 2, 2, EmptyVoxel().WithType(4))
	o.ComputeAllDerivedState()
	second := cache.View(o, ChunkCoord{})

	if first == second {
		t.Errorf("expected a fresh view object after the chunk generation advanced")
	}
	d, ty := second.At(2, 2, 2)
	_ = d
	if ty != 4 {
		t.Errorf("expected the rebuilt view to reflect the new voxel, got type %d", ty)
	}
}
