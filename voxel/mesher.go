package voxel

import "github.com/go-gl/mathgl/mgl32"

// MeshVertex is one surface sample: an interpolated zero-crossing
// position, a central-difference normal and the dominant neighbouring
// material among the cell's corner voxels.
type MeshVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Material TypeId
}

// ChunkMesh is one chunk's contribution to the object surface: an
// independent vertex/index buffer slice, never shared with another
// chunk's buffers.
type ChunkMesh struct {
	Vertices []MeshVertex
	Indices  []uint32
}

// MeshSyncResult reports whether SyncMeshWithObject had to rebuild a
// chunk's mesh, mirroring the original engine's
// RenderResourcesDesynchronized distinction (SPEC_FULL, Supplemented
// Feature 1) rather than a bare bool.
type MeshSyncResult int

const (
	MeshUnchanged MeshSyncResult = iota
	MeshDesynchronized
)

// Mesher extracts and caches a per-chunk surface mesh from an Object's
// voxel field via Surface Nets: one vertex per sign-changing cell,
// connected into quads along the three grid axes. Each chunk's geometry
// lives entirely within its own [0, ChunkSize) cell range so chunk mesh
// buffers never need to be stitched; this leaves a one-cell seam gap at
// chunk boundaries, accepted for the same reason a chunk's own SDFView
// already favours locality over seamless cross-chunk geometry.
type Mesher struct {
	sdf        *sdfViewCache
	meshes     map[ChunkCoord]*ChunkMesh
	generation map[ChunkCoord]uint64
}

// NewMesher constructs an empty mesher with its own SDF view cache.
func NewMesher() *Mesher {
	return &Mesher{
		sdf:        newSDFViewCache(),
		meshes:     make(map[ChunkCoord]*ChunkMesh),
		generation: make(map[ChunkCoord]uint64),
	}
}

// Mesh returns the most recently synced mesh for coord, or nil if the
// chunk has never been meshed (or is empty).
func (m *Mesher) Mesh(coord ChunkCoord) *ChunkMesh {
	return m.meshes[coord]
}

// SyncMeshWithObject rebuilds the mesh for coord if the owning chunk's
// generation has advanced since the last sync (or it has never been
// built), and reports whether a rebuild happened.
func (m *Mesher) SyncMeshWithObject(obj *Object, coord ChunkCoord) MeshSyncResult {
	c := obj.Chunk(coord)
	var gen uint64
	if c != nil {
		gen = c.Generation()
	}

	if last, ok := m.generation[coord]; ok && last == gen {
		return MeshUnchanged
	}

	if c == nil || c.State() == StateEmpty {
		delete(m.meshes, coord)
		m.generation[coord] = gen
		return MeshDesynchronized
	}

	view := m.sdf.View(obj, coord)
	m.meshes[coord] = buildSurfaceNetsMesh(obj, coord, view)
	m.generation[coord] = gen
	return MeshDesynchronized
}

type cellVertex struct {
	index    uint32
	valid    bool
	position mgl32.Vec3
	normal   mgl32.Vec3
	material TypeId
}

func cellIsInside(d int8) bool { return d > 0 }

func buildSurfaceNetsMesh(obj *Object, coord ChunkCoord, view *SDFView) *ChunkMesh {
	mesh := &ChunkMesh{}
	var cells [ChunkSize * ChunkSize * ChunkSize]cellVertex

	cellIdx := func(x, y, z int) int { return x + y*ChunkSize + z*ChunkSize*ChunkSize }

	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				v, ok := buildCellVertex(view, x, y, z, obj.VoxelExtent)
				if !ok {
					continue
				}
				v.index = uint32(len(mesh.Vertices))
				v.valid = true
				cells[cellIdx(x, y, z)] = v
				mesh.Vertices = append(mesh.Vertices, MeshVertex{
					Position: v.position,
					Normal:   v.normal,
					Material: v.material,
				})
			}
		}
	}

	emitQuad := func(c0, c1, c2, c3 int, flip bool) {
		a, b, c, d := cells[c0], cells[c1], cells[c2], cells[c3]
		if !a.valid || !b.valid || !c.valid || !d.valid {
			return
		}
		ia, ib, ic, id := a.index, b.index, c.index, d.index
		if flip {
			mesh.Indices = append(mesh.Indices, ia, id, ic, ia, ic, ib)
		} else {
			mesh.Indices = append(mesh.Indices, ia, ib, ic, ia, ic, id)
		}
	}

	// X-axis edges: corners (x,y,z)-(x+1,y,z).
	for z := 0; z <= ChunkSize; z++ {
		for y := 0; y <= ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				d0, _ := view.At(x, y, z)
				d1, _ := view.At(x+1, y, z)
				in0, in1 := cellIsInside(d0), cellIsInside(d1)
				if in0 == in1 {
					continue
				}
				if y == 0 || z == 0 || y == ChunkSize || z == ChunkSize {
					continue
				}
				emitQuad(
					cellIdx(x, y-1, z-1), cellIdx(x, y, z-1),
					cellIdx(x, y, z), cellIdx(x, y-1, z),
					in0,
				)
			}
		}
	}
	// Y-axis edges: corners (x,y,z)-(x,y+1,z).
	for z := 0; z <= ChunkSize; z++ {
		for x := 0; x <= ChunkSize; x++ {
			for y := 0; y < ChunkSize; y++ {
				d0, _ := view.At(x, y, z)
				d1, _ := view.At(x, y+1, z)
				in0, in1 := cellIsInside(d0), cellIsInside(d1)
				if in0 == in1 {
					continue
				}
				if x == 0 || z == 0 || x == ChunkSize || z == ChunkSize {
					continue
				}
				emitQuad(
					cellIdx(x-1, y, z-1), cellIdx(x-1, y, z),
					cellIdx(x, y, z), cellIdx(x, y, z-1),
					in0,
				)
			}
		}
	}
	// Z-axis edges: corners (x,y,z)-(x,y,z+1).
	for y := 0; y <= ChunkSize; y++ {
		for x := 0; x <= ChunkSize; x++ {
			for z := 0; z < ChunkSize; z++ {
				d0, _ := view.At(x, y, z)
				d1, _ := view.At(x, y, z+1)
				in0, in1 := cellIsInside(d0), cellIsInside(d1)
				if in0 == in1 {
					continue
				}
				if x == 0 || y == 0 || x == ChunkSize || y == ChunkSize {
					continue
				}
				emitQuad(
					cellIdx(x-1, y-1, z), cellIdx(x, y-1, z),
					cellIdx(x, y, z), cellIdx(x-1, y, z),
					in0,
				)
			}
		}
	}

	return mesh
}

// buildCellVertex computes the Surface Nets vertex for the cell whose
// minimum corner is local (x, y, z), returning ok=false when all 8
// corners agree in sign (no surface crossing).
type cellCorner struct {
	d int8
	t TypeId
}

func buildCellVertex(view *SDFView, x, y, z int, voxelExtent float32) (cellVertex, bool) {
	var c [8]cellCorner
	i := 0
	for dz := 0; dz <= 1; dz++ {
		for dy := 0; dy <= 1; dy++ {
			for dx := 0; dx <= 1; dx++ {
				d, t := view.At(x+dx, y+dy, z+dz)
				c[i] = cellCorner{d, t}
				i++
			}
		}
	}

	anyIn, anyOut := false, false
	for _, cc := range c {
		if cellIsInside(cc.d) {
			anyIn = true
		} else {
			anyOut = true
		}
	}
	if !anyIn || !anyOut {
		return cellVertex{}, false
	}

	// Average the interpolated zero crossing along each of the 12 edges
	// of the unit cube that changes sign.
	edges := [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7}, // X edges
		{0, 2}, {1, 3}, {4, 6}, {5, 7}, // Y edges
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Z edges
	}
	offsets := [8][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}

	var sum mgl32.Vec3
	count := 0
	for _, e := range edges {
		a, b := c[e[0]], c[e[1]]
		inA, inB := cellIsInside(a.d), cellIsInside(b.d)
		if inA == inB {
			continue
		}
		fa, fb := float32(a.d), float32(b.d)
		t := fa / (fa - fb)
		pa, pb := offsets[e[0]], offsets[e[1]]
		p := mgl32.Vec3{
			pa[0] + (pb[0]-pa[0])*t,
			pa[1] + (pb[1]-pa[1])*t,
			pa[2] + (pb[2]-pa[2])*t,
		}
		sum = sum.Add(p)
		count++
	}
	if count == 0 {
		return cellVertex{}, false
	}
	localPos := sum.Mul(1.0 / float32(count))

	// Central-difference gradient from the cube's own corner samples.
	// Distance increases towards the inside under this package's
	// positive-inside convention, so the gradient points inward; negate
	// it to get the outward-facing surface normal.
	gx := (float32(c[1].d) - float32(c[0].d)) + (float32(c[3].d) - float32(c[2].d)) +
		(float32(c[5].d) - float32(c[4].d)) + (float32(c[7].d) - float32(c[6].d))
	gy := (float32(c[2].d) - float32(c[0].d)) + (float32(c[3].d) - float32(c[1].d)) +
		(float32(c[6].d) - float32(c[4].d)) + (float32(c[7].d) - float32(c[5].d))
	gz := (float32(c[4].d) - float32(c[0].d)) + (float32(c[5].d) - float32(c[1].d)) +
		(float32(c[6].d) - float32(c[2].d)) + (float32(c[7].d) - float32(c[3].d))
	gradient := mgl32.Vec3{gx, gy, gz}
	var normal mgl32.Vec3
	if gradient.LenSqr() > 1e-12 {
		normal = gradient.Normalize().Mul(-1)
	}

	material := dominantMaterial(c[:])

	worldPos := mgl32.Vec3{
		float32(x) + localPos.X(),
		float32(y) + localPos.Y(),
		float32(z) + localPos.Z(),
	}.Mul(voxelExtent)

	return cellVertex{position: worldPos, normal: normal, material: material}, true
}

func dominantMaterial(corners []cellCorner) TypeId {
	counts := make(map[TypeId]int)
	for _, c := range corners {
		if c.t == TypeEmpty {
			continue
		}
		counts[c.t]++
	}
	best := TypeEmpty
	bestCount := -1
	for t, n := range counts {
		if n > bestCount || (n == bestCount && t < best) {
			best, bestCount = t, n
		}
	}
	return best
}
