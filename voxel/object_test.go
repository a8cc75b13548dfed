package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func solidType() Voxel { return EmptyVoxel().WithType(1).WithSDF(100) }

func TestObjectGetSetAcrossChunks(t *testing.T) {
	o := NewObject(0.1, 1.0)
	o.Set(-3, 5, ChunkSize+2, solidType())
	v := o.Get(-3, 5, ChunkSize+2)
	if v.IsEmpty() {
		t.Fatalf("expected the written voxel to round-trip across chunk boundaries")
	}
	if !o.Get(0, 0, 0).IsEmpty() {
		t.Errorf("untouched voxel should remain empty")
	}
}

func TestOccupiedRangeEmptyObject(t *testing.T) {
	o := NewObject(0.1, 1.0)
	_, _, ok := o.OccupiedRange()
	if ok {
		t.Fatalf("expected OccupiedRange to report false for an empty object")
	}
}

func TestGenerateFillsACube(t *testing.T) {
	o := NewObject(0.1, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{4, 4, 4}, func(x, y, z int) Voxel {
		return solidType()
	})
	o.ComputeAllDerivedState()

	if o.Get(1, 1, 1).IsEmpty() {
		t.Fatalf("expected interior of generated cube to be solid")
	}
	if !o.Get(10, 10, 10).IsEmpty() {
		t.Errorf("expected voxels outside the generated range to stay empty")
	}
}

func TestIntegrateInertiaMassScalesWithVolume(t *testing.T) {
	o := NewObject(1.0, 2.0)
	o.Generate([3]int{0, 0, 0}, [3]int{ChunkSize, ChunkSize, ChunkSize}, func(x, y, z int) Voxel {
		return solidType()
	})
	o.ComputeAllDerivedState()

	expectedMass := float32(ChunkSize*ChunkSize*ChunkSize) * 1.0 * 1.0 * 1.0 * 2.0
	if diff := o.Mass() - expectedMass; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("expected mass %v, got %v", expectedMass, o.Mass())
	}

	com := o.CenterOfMass()
	expectedCenter := mgl32.Vec3{float32(ChunkSize) / 2, float32(ChunkSize) / 2, float32(ChunkSize) / 2}
	if com.Sub(expectedCenter).Len() > 1e-2 {
		t.Errorf("expected center of mass near %v, got %v", expectedCenter, com)
	}
}

func TestGlobalRegionIDConnectsAcrossChunkBoundary(t *testing.T) {
	o := NewObject(0.1, 1.0)
	o.Set(ChunkSize-1, 0, 0, solidType())
	o.Set(ChunkSize, 0, 0, solidType())
	o.ComputeAllDerivedState()

	r1, ok1 := o.GlobalRegionID(ChunkSize-1, 0, 0)
	r2, ok2 := o.GlobalRegionID(ChunkSize, 0, 0)
	if !ok1 || !ok2 {
		t.Fatalf("expected both voxels to report a region id")
	}
	if r1 != r2 {
		t.Errorf("expected face-adjacent voxels across a chunk boundary to share a region, got %d vs %d", r1, r2)
	}
}

func TestGlobalRegionIDSeparatesDisconnectedObjects(t *testing.T) {
	o := NewObject(0.1, 1.0)
	o.Set(0, 0, 0, solidType())
	o.Set(ChunkSize*3, 0, 0, solidType())
	o.ComputeAllDerivedState()

	r1, _ := o.GlobalRegionID(0, 0, 0)
	r2, _ := o.GlobalRegionID(ChunkSize*3, 0, 0)
	if r1 == r2 {
		t.Errorf("expected disconnected voxels to report different regions")
	}
}

func TestModifyVoxelsWithinSphereCarvesVoxels(t *testing.T) {
	o := NewObject(1.0, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{8, 8, 8}, func(x, y, z int) Voxel {
		return solidType()
	})
	o.ComputeAllDerivedState()

	center := mgl32.Vec3{4, 4, 4}
	o.ModifyVoxelsWithinSphere(center, 2, func(v Voxel) Voxel { return EmptyVoxel() })
	o.ComputeAllDerivedState()

	if !o.Get(4, 4, 4).IsEmpty() {
		t.Errorf("expected center voxel to be carved out")
	}
	if o.Get(0, 0, 0).IsEmpty() {
		t.Errorf("expected corner voxel outside the sphere to remain solid")
	}
}

func TestObtainSurfaceVoxelsWithinSphereOnlyReturnsSurface(t *testing.T) {
	o := NewObject(1.0, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{8, 8, 8}, func(x, y, z int) Voxel {
		return solidType()
	})
	o.ComputeAllDerivedState()

	refs := o.ObtainSurfaceVoxelsWithinSphere(mgl32.Vec3{4, 4, 4}, 100)
	if len(refs) == 0 {
		t.Fatalf("expected some surface voxels")
	}
	for _, ref := range refs {
		if !o.isSurfaceVoxel(ref.X, ref.Y, ref.Z) {
			t.Errorf("returned voxel %v is not a surface voxel", ref)
		}
	}
}
