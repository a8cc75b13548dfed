package voxel

import "testing"

func TestChunkStartsEmpty(t *testing.T) {
	c := NewEmptyChunk()
	if c.State() != StateEmpty {
		t.Fatalf("expected StateEmpty, got %v", c.State())
	}
	if !c.Get(0, 0, 0).IsEmpty() {
		t.Errorf("expected empty voxel from a fresh chunk")
	}
}

func TestChunkSetForcesNonUniform(t *testing.T) {
	c := NewEmptyChunk()
	c.Set(1, 2, 3, EmptyVoxel().WithType(5))
	if c.State() != StateNonUniform {
		t.Fatalf("expected StateNonUniform after Set, got %v", c.State())
	}
	if got := c.Get(1, 2, 3).Type; got != 5 {
		t.Errorf("expected type 5, got %d", got)
	}
}

func TestComputeUniformStateCollapsesToUniform(t *testing.T) {
	c := NewEmptyChunk()
	v := EmptyVoxel().WithType(7).WithSDF(10)
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				c.Set(x, y, z, v)
			}
		}
	}
	c.ComputeUniformState()
	if c.State() != StateUniform {
		t.Fatalf("expected StateUniform, got %v", c.State())
	}
	if c.Get(4, 4, 4) != v {
		t.Errorf("uniform chunk should report the fill voxel everywhere")
	}
}

func TestComputeUniformStateCollapsesToEmpty(t *testing.T) {
	c := NewEmptyChunk()
	c.Set(0, 0, 0, EmptyVoxel().WithType(1))
	c.Set(0, 0, 0, EmptyVoxel())
	c.ComputeUniformState()
	if c.State() != StateEmpty {
		t.Fatalf("expected collapse back to StateEmpty, got %v", c.State())
	}
}

func TestFaceOccupancyUniform(t *testing.T) {
	c := NewEmptyChunk()
	if !c.FaceOccupancy(FaceNegX).Empty() {
		t.Errorf("empty chunk should report zero occupancy")
	}

	v := EmptyVoxel().WithType(1)
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				c.Set(x, y, z, v)
			}
		}
	}
	c.ComputeUniformState()
	if !c.FaceOccupancy(FacePosZ).Full() {
		t.Errorf("fully solid uniform chunk should report full face occupancy")
	}
}

func TestCanBecomeUniformRequiresOwnUniformAndNeighbours(t *testing.T) {
	c := NewEmptyChunk()
	v := EmptyVoxel().WithType(1)
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				c.Set(x, y, z, v)
			}
		}
	}
	c.ComputeUniformState()

	allOccluded := [6]bool{true, true, true, true, true, true}
	if !c.CanBecomeUniform(allOccluded) {
		t.Errorf("expected conservative interior check to pass when every neighbour is fully occluded")
	}

	oneMissing := [6]bool{true, true, true, false, true, true}
	if c.CanBecomeUniform(oneMissing) {
		t.Errorf("expected interior check to fail when one neighbour face is not fully occluded")
	}
}

func TestUpdateConnectedRegionsSixConnectivity(t *testing.T) {
	c := NewEmptyChunk()
	v := EmptyVoxel().WithType(1)
	// Two voxels touching only at a diagonal must be distinct regions
	// under 6-connectivity.
	c.Set(0, 0, 0, v)
	c.Set(1, 1, 0, v)
	c.updateConnectedRegions()
	if c.RegionCount() != 2 {
		t.Errorf("expected 2 regions for diagonally-adjacent voxels, got %d", c.RegionCount())
	}

	c2 := NewEmptyChunk()
	c2.Set(0, 0, 0, v)
	c2.Set(1, 0, 0, v)
	c2.updateConnectedRegions()
	if c2.RegionCount() != 1 {
		t.Errorf("expected 1 region for face-adjacent voxels, got %d", c2.RegionCount())
	}
}

func TestUpdateConnectedRegionsOverflowSentinel(t *testing.T) {
	c := NewEmptyChunk()
	v := EmptyVoxel().WithType(1)
	// Place isolated single-voxel components on an every-other-cell grid
	// (none 6-adjacent to another; (ChunkSize/2)^3 of them, far more than
	// maxRegions), plus one more isolated voxel at (1, 1, 1).
	for z := 0; z < ChunkSize; z += 2 {
		for y := 0; y < ChunkSize; y += 2 {
			for x := 0; x < ChunkSize; x += 2 {
				c.Set(x, y, z, v)
			}
		}
	}
	c.Set(1, 1, 1, v)
	c.updateConnectedRegions()
	if c.RegionAt(0, 0, 0) != regionUnknown {
		t.Errorf("expected overflow to assign the regionUnknown sentinel")
	}
}
