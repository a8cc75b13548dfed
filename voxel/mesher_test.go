package voxel

import "testing"

func TestSyncMeshWithObjectBuildsOnFirstCall(t *testing.T) {
	o := NewObject(1.0, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{4, 4, 4}, func(x, y, z int) Voxel {
		return EmptyVoxel().WithType(1).WithSDF(100)
	})
	o.ComputeAllDerivedState()

	m := NewMesher()
	result := m.SyncMeshWithObject(o, ChunkCoord{})
	if result != MeshDesynchronized {
		t.Fatalf("expected the first sync to report MeshDesynchronized, got %v", result)
	}
	mesh := m.Mesh(ChunkCoord{})
	if mesh == nil || len(mesh.Vertices) == 0 {
		t.Fatalf("expected a non-empty mesh for a chunk with a surface")
	}
	if len(mesh.Indices)%3 != 0 {
		t.Errorf("expected a whole number of triangles, got %d indices", len(mesh.Indices))
	}
}

func TestSyncMeshWithObjectUnchangedWithoutEdits(t *testing.T) {
	o := NewObject(1.0, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{4, 4, 4}, func(x, y, z int) Voxel {
		return EmptyVoxel().WithType(1).WithSDF(100)
	})
	o.ComputeAllDerivedState()

	m := NewMesher()
	m.SyncMeshWithObject(o, ChunkCoord{})
	if result := m.SyncMeshWithObject(o, ChunkCoord{}); result != MeshUnchanged {
		t.Errorf("expected a second sync with no edits to report MeshUnchanged, got %v", result)
	}
}

func TestSyncMeshWithObjectRebuildsAfterEdit(t *testing.T) {
	o := NewObject(1.0, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{4, 4, 4}, func(x, y, z int) Voxel {
		return EmptyVoxel().WithType(1).WithSDF(100)
	})
	o.ComputeAllDerivedState()

	m := NewMesher()
	m.SyncMeshWithObject(o, ChunkCoord{})

	o.Set(0, 0, 0, EmptyVoxel())
	o.ComputeAllDerivedState()

	if result := m.SyncMeshWithObject(o, ChunkCoord{}); result != MeshDesynchronized {
		t.Errorf("expected a sync after an edit to report MeshDesynchronized, got %v", result)
	}
}

func TestMesherEmptyChunkProducesNoMesh(t *testing.T) {
	o := NewObject(1.0, 1.0)
	m := NewMesher()
	m.SyncMeshWithObject(o, ChunkCoord{})
	if mesh := m.Mesh(ChunkCoord{}); mesh != nil {
		t.Errorf("expected no mesh for an empty chunk, got %+v", mesh)
	}
}
