package voxel

// ChunkSize is the edge length of a chunk in voxels, matching the
// smaller of the spec's two supported chunk edges (16 or 32; see
// VoxelConfig.ChunkEdgeVoxelCount) so a chunk holds 4096 voxels.
const ChunkSize = 16
const chunkVolume = ChunkSize * ChunkSize * ChunkSize

// faceMaskWords is how many uint64 words a FaceMask needs to cover one
// ChunkSize x ChunkSize face (256 bits at ChunkSize=16).
const faceMaskWords = (ChunkSize*ChunkSize + 63) / 64

// FaceMask is a bitset over one boundary face's ChunkSize x ChunkSize
// cells, bit i = u + v*ChunkSize. Wider than a single uint64 once
// ChunkSize exceeds 8, so FaceOccupancy returns this instead.
type FaceMask [faceMaskWords]uint64

func (m *FaceMask) set(bit int) {
	m[bit/64] |= 1 << uint(bit%64)
}

// Empty reports whether no cell in the face is occupied.
func (m FaceMask) Empty() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// Full reports whether every cell in the face is occupied.
func (m FaceMask) Full() bool {
	const totalBits = ChunkSize * ChunkSize
	for i, w := range m {
		bits := 64
		if i == len(m)-1 {
			if rem := totalBits - i*64; rem < 64 {
				bits = rem
			}
		}
		want := ^uint64(0)
		if bits < 64 {
			want = uint64(1)<<uint(bits) - 1
		}
		if w != want {
			return false
		}
	}
	return true
}

func fullFaceMask() FaceMask {
	var m FaceMask
	for i := 0; i < ChunkSize*ChunkSize; i++ {
		m.set(i)
	}
	return m
}

// regionUnknown is the sentinel region id assigned when a chunk's interior
// would otherwise require more than maxRegions distinct ids (see
// updateConnectedRegions).
const regionUnknown uint8 = 0xFF
const maxRegions = 64

// State is the storage state of a Chunk.
type State int

const (
	// StateEmpty: every voxel is empty. No Voxels array is allocated.
	StateEmpty State = iota
	// StateUniform: every voxel shares the same type and SDF sample.
	StateUniform
	// StateNonUniform: voxels differ; the full per-voxel array is live.
	StateNonUniform
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateUniform:
		return "Uniform"
	case StateNonUniform:
		return "NonUniform"
	default:
		return "Unknown"
	}
}

// Face indices, in the fixed order used by FaceOccupancy and the
// neighbour-occlusion checks in CanBecomeUniform.
const (
	FaceNegX = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

// Chunk is a fixed ChunkSize^3 block of voxels, one unit of storage and
// derived-state caching within an Object.
type Chunk struct {
	state   State
	uniform Voxel
	voxels  [chunkVolume]Voxel

	// generation is bumped on every mutation. Callers that cache derived
	// state keyed on (chunk index, generation) can detect staleness
	// without recomputing.
	generation uint64

	// regions holds a per-voxel connected-component id, valid only once
	// updateConnectedRegions has run since the last structural change.
	// Only meaningful when state == StateNonUniform.
	regions     [chunkVolume]uint8
	regionCount int
	regionsDone bool
}

func chunkIndex(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkSize*ChunkSize
}

// InBounds reports whether local coordinates address a voxel in the chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// NewEmptyChunk returns a chunk in StateEmpty.
func NewEmptyChunk() *Chunk {
	return &Chunk{state: StateEmpty, uniform: EmptyVoxel()}
}

// State reports the chunk's current storage state.
func (c *Chunk) State() State { return c.state }

// Generation reports the chunk's mutation counter.
func (c *Chunk) Generation() uint64 { return c.generation }

// Get returns the voxel at local coordinates (x, y, z).
func (c *Chunk) Get(x, y, z int) Voxel {
	switch c.state {
	case StateEmpty:
		return EmptyVoxel()
	case StateUniform:
		return c.uniform
	default:
		return c.voxels[chunkIndex(x, y, z)]
	}
}

// Set writes a voxel at local coordinates, expanding a non-NonUniform
// chunk into per-voxel storage as needed, and bumps the generation
// counter. Callers that perform bulk edits should follow with
// ComputeUniformState to re-collapse the chunk when possible.
func (c *Chunk) Set(x, y, z int, v Voxel) {
	if c.state != StateNonUniform {
		c.expand()
	}
	c.voxels[chunkIndex(x, y, z)] = v
	c.generation++
	c.regionsDone = false
}

// expand materializes the full per-voxel array from the current
// Empty/Uniform state.
func (c *Chunk) expand() {
	fill := EmptyVoxel()
	if c.state == StateUniform {
		fill = c.uniform
	}
	for i := range c.voxels {
		c.voxels[i] = fill
	}
	c.state = StateNonUniform
}

// ComputeUniformState scans the chunk's voxels and collapses it to
// StateEmpty or StateUniform when every voxel agrees; otherwise it
// settles as StateNonUniform. Called after bulk edits (the individual
// Set calls always force StateNonUniform to keep single-voxel writes
// cheap).
func (c *Chunk) ComputeUniformState() {
	if c.state != StateNonUniform {
		return
	}
	first := c.voxels[0]
	allSame := true
	for i := 1; i < chunkVolume; i++ {
		if c.voxels[i] != first {
			allSame = false
			break
		}
	}
	if !allSame {
		return
	}
	if first.IsEmpty() {
		c.state = StateEmpty
		c.uniform = EmptyVoxel()
	} else {
		c.state = StateUniform
		c.uniform = first
	}
	c.regionsDone = false
}

// FaceOccupancy returns a FaceMask (row-major over the two axes
// perpendicular to face, bit i = u + v*ChunkSize) of which cells on the
// given boundary face are non-empty. Object.ComputeAllDerivedState uses
// it to answer a neighbour's CanBecomeUniform query.
func (c *Chunk) FaceOccupancy(face int) FaceMask {
	if c.state == StateEmpty {
		return FaceMask{}
	}
	if c.state == StateUniform {
		if c.uniform.IsEmpty() {
			return FaceMask{}
		}
		return fullFaceMask()
	}

	var mask FaceMask
	axis, fixed := faceAxis(face)
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			x, y, z := faceCoords(axis, fixed, u, v)
			if !c.voxels[chunkIndex(x, y, z)].IsEmpty() {
				mask.set(u + v*ChunkSize)
			}
		}
	}
	return mask
}

// faceAxis returns the axis index (0=X,1=Y,2=Z) that face is normal to,
// and the fixed coordinate along that axis for cells on that face.
func faceAxis(face int) (axis, fixed int) {
	switch face {
	case FaceNegX:
		return 0, 0
	case FacePosX:
		return 0, ChunkSize - 1
	case FaceNegY:
		return 1, 0
	case FacePosY:
		return 1, ChunkSize - 1
	case FaceNegZ:
		return 2, 0
	default:
		return 2, ChunkSize - 1
	}
}

func faceCoords(axis, fixed, u, v int) (x, y, z int) {
	switch axis {
	case 0:
		return fixed, u, v
	case 1:
		return u, fixed, v
	default:
		return u, v, fixed
	}
}

// CanBecomeUniform applies the Uniform-chunk boundary tie-break: the
// chunk may only be treated as fully interior (eligible for any
// Uniform-chunk-only fast path that assumes no exposed surface) when its
// own state is already StateUniform with a non-empty value, and every one
// of the six neighbourFullyOccluded entries is true. A neighbour reports
// full occlusion by returning FaceOccupancy(oppositeFace).Full() == true
// (or being itself Uniform and non-empty) to the caller, which supplies
// that as neighbourFullyOccluded.
func (c *Chunk) CanBecomeUniform(neighbourFullyOccluded [6]bool) bool {
	if c.state != StateUniform || c.uniform.IsEmpty() {
		return false
	}
	for _, full := range neighbourFullyOccluded {
		if !full {
			return false
		}
	}
	return true
}

// updateConnectedRegions performs a 6-connected flood fill over the
// chunk's non-empty voxels, assigning each a region id in [0, maxRegions).
// If the chunk would need more than maxRegions distinct ids, every voxel
// is instead assigned regionUnknown, forcing downstream consumers (the
// region splitter) to treat the whole chunk as a single unresolved unit
// until a later call succeeds under the cap.
func (c *Chunk) updateConnectedRegions() {
	if c.state != StateNonUniform {
		c.regionCount = 0
		c.regionsDone = true
		return
	}

	var assigned [chunkVolume]int32
	for i := range assigned {
		assigned[i] = -1
	}

	uf := newUnionFind(chunkVolume)
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				if c.voxels[chunkIndex(x, y, z)].IsEmpty() {
					continue
				}
				idx := int32(chunkIndex(x, y, z))
				if x > 0 && !c.voxels[chunkIndex(x-1, y, z)].IsEmpty() {
					uf.union(idx, int32(chunkIndex(x-1, y, z)))
				}
				if y > 0 && !c.voxels[chunkIndex(x, y-1, z)].IsEmpty() {
					uf.union(idx, int32(chunkIndex(x, y-1, z)))
				}
				if z > 0 && !c.voxels[chunkIndex(x, y, z-1)].IsEmpty() {
					uf.union(idx, int32(chunkIndex(x, y, z-1)))
				}
			}
		}
	}

	rootToId := make(map[int32]uint8)
	overflow := false
	for i := 0; i < chunkVolume; i++ {
		if c.voxels[i].IsEmpty() {
			continue
		}
		root := uf.find(int32(i))
		id, ok := rootToId[root]
		if !ok {
			if len(rootToId) >= maxRegions {
				overflow = true
				break
			}
			id = uint8(len(rootToId))
			rootToId[root] = id
		}
		assigned[i] = int32(id)
	}

	if overflow {
		for i := range c.regions {
			if c.voxels[i].IsEmpty() {
				c.regions[i] = regionUnknown
			} else {
				c.regions[i] = regionUnknown
			}
		}
		c.regionCount = 1
		c.regionsDone = true
		return
	}

	for i := 0; i < chunkVolume; i++ {
		if assigned[i] < 0 {
			c.regions[i] = regionUnknown
		} else {
			c.regions[i] = uint8(assigned[i])
		}
	}
	c.regionCount = len(rootToId)
	c.regionsDone = true
}

// RegionAt returns the region id assigned to the voxel at (x, y, z) by
// the most recent updateConnectedRegions call. Returns regionUnknown if
// regions have never been computed or the chunk overflowed maxRegions.
func (c *Chunk) RegionAt(x, y, z int) uint8 {
	if !c.regionsDone {
		c.updateConnectedRegions()
	}
	if c.state != StateNonUniform {
		return regionUnknown
	}
	return c.regions[chunkIndex(x, y, z)]
}

// RegionCount returns the number of distinct region ids in the chunk
// after the most recent updateConnectedRegions call.
func (c *Chunk) RegionCount() int {
	if !c.regionsDone {
		c.updateConnectedRegions()
	}
	return c.regionCount
}
