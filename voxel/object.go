package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord addresses a chunk within an Object's sparse grid, in units
// of ChunkSize voxels.
type ChunkCoord struct {
	X, Y, Z int32
}

// WorldVoxelRef names a single voxel by its world-integer coordinates,
// returned by the surface-query bulk modification tools.
type WorldVoxelRef struct {
	X, Y, Z int
	Voxel   Voxel
}

type crossRegionKey struct {
	coord  ChunkCoord
	region uint8
}

// Object is a sparse grid of chunks together with the cross-chunk
// derived state the rest of the package (SDF sampling, meshing, contact
// generation, region splitting) relies on: a cross-chunk union-find
// tying together each chunk's local connected-component ids, an occupied
// chunk-coordinate range, and cached aggregate inertial properties.
type Object struct {
	chunks map[ChunkCoord]*Chunk
	dirty  map[ChunkCoord]struct{}

	// VoxelExtent is the world-space edge length of a single voxel; it
	// fixes both the SDF quantization scale (voxel.QuantizeSDF) and the
	// per-voxel mass used by the inertia aggregator.
	VoxelExtent float32
	// Density is mass per unit volume, used to integrate per-voxel mass
	// contributions.
	Density float32

	rangeValid     bool
	minChunk       ChunkCoord
	maxChunk       ChunkCoord

	crossUF         *unionFind
	crossKeyToIndex map[crossRegionKey]int32
	crossIndexToKey []crossRegionKey
	crossValid      bool

	inertiaValid bool
	mass         float32
	centerOfMass mgl32.Vec3
	inertia      mgl32.Mat3
}

// NewObject constructs an empty chunked voxel object with the given
// per-voxel world size and density.
func NewObject(voxelExtent, density float32) *Object {
	return &Object{
		chunks:      make(map[ChunkCoord]*Chunk),
		dirty:       make(map[ChunkCoord]struct{}),
		VoxelExtent: voxelExtent,
		Density:     density,
	}
}

func worldToChunk(x, y, z int) (ChunkCoord, int, int, int) {
	cx, lx := floorDivMod(x, ChunkSize)
	cy, ly := floorDivMod(y, ChunkSize)
	cz, lz := floorDivMod(z, ChunkSize)
	return ChunkCoord{int32(cx), int32(cy), int32(cz)}, lx, ly, lz
}

func floorDivMod(a, b int) (q, r int) {
	q = a / b
	r = a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// Chunk returns the chunk at coord, or nil if absent (absent chunks are
// implicitly StateEmpty).
func (o *Object) Chunk(coord ChunkCoord) *Chunk {
	return o.chunks[coord]
}

// Chunks iterates every materialized (non-absent) chunk and its
// coordinate. Absent chunks (implicitly empty) are not visited.
func (o *Object) Chunks(fn func(ChunkCoord, *Chunk) bool) {
	for coord, c := range o.chunks {
		if !fn(coord, c) {
			return
		}
	}
}

func (o *Object) getOrCreateChunk(coord ChunkCoord) *Chunk {
	c, ok := o.chunks[coord]
	if !ok {
		c = NewEmptyChunk()
		o.chunks[coord] = c
	}
	return c
}

func (o *Object) markDirty(coord ChunkCoord) {
	o.dirty[coord] = struct{}{}
	o.rangeValid = false
	o.crossValid = false
	o.inertiaValid = false
}

// Get returns the voxel at world-integer coordinates.
func (o *Object) Get(x, y, z int) Voxel {
	coord, lx, ly, lz := worldToChunk(x, y, z)
	c, ok := o.chunks[coord]
	if !ok {
		return EmptyVoxel()
	}
	return c.Get(lx, ly, lz)
}

// Set writes the voxel at world-integer coordinates, materializing the
// owning chunk if needed, and marks it dirty for the next
// ComputeAllDerivedState pass.
func (o *Object) Set(x, y, z int, v Voxel) {
	coord, lx, ly, lz := worldToChunk(x, y, z)
	c := o.getOrCreateChunk(coord)
	c.Set(lx, ly, lz, v)
	o.markDirty(coord)
}

// Generate fills the object from a sampler invoked once per voxel over
// [min, max) in world-integer coordinates, without computing any derived
// state. Callers must follow with ComputeAllDerivedState before using
// the SDF, mesh, region or inertia queries.
func (o *Object) Generate(min, max [3]int, sampler func(x, y, z int) Voxel) {
	for x := min[0]; x < max[0]; x++ {
		for y := min[1]; y < max[1]; y++ {
			for z := min[2]; z < max[2]; z++ {
				v := sampler(x, y, z)
				if v.IsEmpty() {
					continue
				}
				o.Set(x, y, z, v)
			}
		}
	}
}

// GenerateWithoutDerivedState is an alias for Generate, named to mirror
// spec terminology that distinguishes bulk population from the
// (separately invoked, potentially expensive) derived-state pipeline.
func (o *Object) GenerateWithoutDerivedState(min, max [3]int, sampler func(x, y, z int) Voxel) {
	o.Generate(min, max, sampler)
}

// ComputeAllDerivedState runs the full six-step derived-state pipeline
// over every chunk touched since the last call:
//  1. collapse each dirty chunk to its tightest state (Empty/Uniform/NonUniform)
//  2. recompute each dirty chunk's intra-chunk connected regions
//  3. refresh boundary occlusion against live neighbours
//  4. stitch regions across chunk boundaries into the object-wide table
//  5. recompute the occupied chunk-coordinate range
//  6. integrate aggregate mass, center of mass and inertia tensor
func (o *Object) ComputeAllDerivedState() {
	for coord := range o.dirty {
		c, ok := o.chunks[coord]
		if !ok {
			continue
		}
		c.ComputeUniformState()
		c.updateConnectedRegions()
	}
	// Step 3: a Uniform chunk not fully occluded on all six faces by its
	// live neighbours (Chunk.CanBecomeUniform) goes back to NonUniform.
	for coord, c := range o.chunks {
		if c.State() != StateUniform {
			continue
		}
		var occluded [6]bool
		for f, off := range neighbourOffsets {
			n, ok := o.chunks[ChunkCoord{coord.X + off.X, coord.Y + off.Y, coord.Z + off.Z}]
			occluded[f] = ok && n.FaceOccupancy(oppositeFace[f]).Full()
		}
		if !c.CanBecomeUniform(occluded) {
			c.expand()
			c.updateConnectedRegions()
		}
	}

	o.rebuildCrossChunkRegions()
	o.recomputeOccupiedRange()
	o.integrateInertia()

	o.dirty = make(map[ChunkCoord]struct{})
}

// neighbourOffsets matches the Face* constants in chunk.go.
var neighbourOffsets = [6]ChunkCoord{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

var oppositeFace = [6]int{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

func (o *Object) rebuildCrossChunkRegions() {
	uf := newUnionFind(0)
	keyToIndex := make(map[crossRegionKey]int32)
	var indexToKey []crossRegionKey

	indexFor := func(coord ChunkCoord, region uint8) int32 {
		key := crossRegionKey{coord, region}
		if idx, ok := keyToIndex[key]; ok {
			return idx
		}
		idx := uf.grow(1)
		keyToIndex[key] = idx
		indexToKey = append(indexToKey, key)
		return idx
	}

	// Stitch every occupied chunk's boundary against its live neighbours.
	for coord, c := range o.chunks {
		if c.State() == StateEmpty {
			continue
		}
		// Register every local region first, so a region that touches no
		// occupied neighbour still gets its own root.
		for x := 0; x < ChunkSize; x++ {
			for y := 0; y < ChunkSize; y++ {
				for z := 0; z < ChunkSize; z++ {
					if !c.Get(x, y, z).IsEmpty() {
						indexFor(coord, c.RegionAt(x, y, z))
					}
				}
			}
		}
		for face := 0; face < 6; face++ {
			nCoord := ChunkCoord{
				coord.X + neighbourOffsets[face].X,
				coord.Y + neighbourOffsets[face].Y,
				coord.Z + neighbourOffsets[face].Z,
			}
			nChunk, ok := o.chunks[nCoord]
			if !ok || nChunk.State() == StateEmpty {
				continue
			}
			o.stitchFace(uf, indexFor, coord, c, nCoord, nChunk, face)
		}
	}

	o.crossUF = uf
	o.crossKeyToIndex = keyToIndex
	o.crossIndexToKey = indexToKey
	o.crossValid = true
}

func (o *Object) stitchFace(uf *unionFind, indexFor func(ChunkCoord, uint8) int32, coord ChunkCoord, c *Chunk, nCoord ChunkCoord, nChunk *Chunk, face int) {
	axis, fixed := faceAxis(face)
	_ = fixed
	nAxis, nFixed := faceAxis(oppositeFace[face])
	_ = nAxis

	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			x, y, z := faceCoords(axis, boundaryCoord(face), u, v)
			nx, ny, nz := faceCoords(axis, nFixed, u, v)

			vox := c.Get(x, y, z)
			nVox := nChunk.Get(nx, ny, nz)
			if vox.IsEmpty() || nVox.IsEmpty() {
				continue
			}

			r1 := c.RegionAt(x, y, z)
			r2 := nChunk.RegionAt(nx, ny, nz)
			uf.union(indexFor(coord, r1), indexFor(nCoord, r2))
		}
	}
}

func boundaryCoord(face int) int {
	_, fixed := faceAxis(face)
	return fixed
}

// GlobalRegionID returns a stable identifier for the connected component
// containing the voxel at world coordinates (x, y, z), or false if the
// voxel is empty. Two voxels anywhere in the object share a
// GlobalRegionID if and only if they are 6-connected through non-empty
// voxels, accounting for the chunk-local regionUnknown merge-all
// fallback (an unknown-region chunk appears as a single connected unit).
func (o *Object) GlobalRegionID(x, y, z int) (int32, bool) {
	if !o.crossValid {
		o.rebuildCrossChunkRegions()
	}
	coord, lx, ly, lz := worldToChunk(x, y, z)
	c, ok := o.chunks[coord]
	if !ok {
		return 0, false
	}
	v := c.Get(lx, ly, lz)
	if v.IsEmpty() {
		return 0, false
	}
	region := c.RegionAt(lx, ly, lz)
	key := crossRegionKey{coord, region}
	idx, ok := o.crossKeyToIndex[key]
	if !ok {
		return 0, false
	}
	return o.crossUF.find(idx), true
}

func (o *Object) recomputeOccupiedRange() {
	first := true
	for coord, c := range o.chunks {
		if c.State() == StateEmpty {
			continue
		}
		if first {
			o.minChunk, o.maxChunk = coord, coord
			first = false
			continue
		}
		if coord.X < o.minChunk.X {
			o.minChunk.X = coord.X
		}
		if coord.Y < o.minChunk.Y {
			o.minChunk.Y = coord.Y
		}
		if coord.Z < o.minChunk.Z {
			o.minChunk.Z = coord.Z
		}
		if coord.X > o.maxChunk.X {
			o.maxChunk.X = coord.X
		}
		if coord.Y > o.maxChunk.Y {
			o.maxChunk.Y = coord.Y
		}
		if coord.Z > o.maxChunk.Z {
			o.maxChunk.Z = coord.Z
		}
	}
	o.rangeValid = true
	if first {
		// No occupied chunks; leave a degenerate (zero) range.
		o.minChunk, o.maxChunk = ChunkCoord{}, ChunkCoord{}
	}
}

// OccupiedRange returns the inclusive bounding box of occupied chunk
// coordinates, and false if the object is entirely empty.
func (o *Object) OccupiedRange() (min, max ChunkCoord, ok bool) {
	if !o.rangeValid {
		o.recomputeOccupiedRange()
	}
	hasAny := false
	for _, c := range o.chunks {
		if c.State() != StateEmpty {
			hasAny = true
			break
		}
	}
	return o.minChunk, o.maxChunk, hasAny
}

func (o *Object) integrateInertia() {
	var totalMass float32
	var firstMoment mgl32.Vec3
	var inertiaAboutOrigin mgl32.Mat3

	o.Chunks(func(coord ChunkCoord, c *Chunk) bool {
		origin := mgl32.Vec3{
			float32(coord.X) * ChunkSize * o.VoxelExtent,
			float32(coord.Y) * ChunkSize * o.VoxelExtent,
			float32(coord.Z) * ChunkSize * o.VoxelExtent,
		}
		m, fm, inertia := integrateChunkInertia(c, origin, o.VoxelExtent, o.Density)
		totalMass += m
		firstMoment = firstMoment.Add(fm)
		inertiaAboutOrigin = mat3Add(inertiaAboutOrigin, inertia)
		return true
	})

	o.mass = totalMass
	if totalMass > 0 {
		o.centerOfMass = firstMoment.Mul(1.0 / totalMass)
	} else {
		o.centerOfMass = mgl32.Vec3{}
	}
	// Shift the aggregate (about the object's local origin) to be about
	// the center of mass: I_C = I_O - m * (dot(r,r) Id - outer(r,r)),
	// r = centerOfMass.
	shift := mat3Sub(mat3Scale(mat3Identity(), o.centerOfMass.Dot(o.centerOfMass)), outer3(o.centerOfMass))
	o.inertia = mat3Sub(inertiaAboutOrigin, mat3Scale(shift, totalMass))
	o.inertiaValid = true
}

// integrateChunkInertia computes a chunk's mass, first moment and
// inertia tensor about a common reference point (origin), using the
// closed-form solid-cube formula for a Uniform chunk and per-voxel
// summation (each voxel treated as a small cube) for a NonUniform one.
func integrateChunkInertia(c *Chunk, origin mgl32.Vec3, voxelExtent, density float32) (mass float32, firstMoment mgl32.Vec3, inertia mgl32.Mat3) {
	switch c.State() {
	case StateEmpty:
		return 0, mgl32.Vec3{}, mat3Zero()
	case StateUniform:
		edge := float32(ChunkSize) * voxelExtent
		volume := edge * edge * edge
		m := density * volume
		centroid := origin.Add(mgl32.Vec3{edge / 2, edge / 2, edge / 2})
		local := solidCubeInertia(m, edge)
		i := parallelAxisShift(local, m, centroid)
		return m, centroid.Mul(m), i
	default:
		voxelVolume := voxelExtent * voxelExtent * voxelExtent
		voxelMass := density * voxelVolume
		voxelLocal := solidCubeInertia(voxelMass, voxelExtent)
		for x := 0; x < ChunkSize; x++ {
			for y := 0; y < ChunkSize; y++ {
				for z := 0; z < ChunkSize; z++ {
					if c.voxels[chunkIndex(x, y, z)].IsEmpty() {
						continue
					}
					centroid := origin.Add(mgl32.Vec3{
						(float32(x) + 0.5) * voxelExtent,
						(float32(y) + 0.5) * voxelExtent,
						(float32(z) + 0.5) * voxelExtent,
					})
					mass += voxelMass
					firstMoment = firstMoment.Add(centroid.Mul(voxelMass))
					inertia = mat3Add(inertia, parallelAxisShift(voxelLocal, voxelMass, centroid))
				}
			}
		}
		return mass, firstMoment, inertia
	}
}

// Mass returns the object's aggregate mass, recomputing if stale.
func (o *Object) Mass() float32 {
	if !o.inertiaValid {
		o.integrateInertia()
	}
	return o.mass
}

// CenterOfMass returns the object's center of mass in local coordinates.
func (o *Object) CenterOfMass() mgl32.Vec3 {
	if !o.inertiaValid {
		o.integrateInertia()
	}
	return o.centerOfMass
}

// InertiaTensor returns the object's inertia tensor about its center of
// mass, in local coordinates.
func (o *Object) InertiaTensor() mgl32.Mat3 {
	if !o.inertiaValid {
		o.integrateInertia()
	}
	return o.inertia
}

// isSurfaceVoxel reports whether the non-empty voxel at world
// coordinates has at least one empty 6-neighbour.
func (o *Object) isSurfaceVoxel(x, y, z int) bool {
	offsets := [6][3]int{{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1}}
	for _, d := range offsets {
		if o.Get(x+d[0], y+d[1], z+d[2]).IsEmpty() {
			return true
		}
	}
	return false
}

// ObtainSurfaceVoxelsWithinSphere returns every surface voxel (non-empty
// with at least one empty neighbour) whose world-space cell center lies
// within radius of center.
func (o *Object) ObtainSurfaceVoxelsWithinSphere(center mgl32.Vec3, radius float32) []WorldVoxelRef {
	var out []WorldVoxelRef
	o.forEachVoxelInSphere(center, radius, func(x, y, z int, v Voxel) {
		if !v.IsEmpty() && o.isSurfaceVoxel(x, y, z) {
			out = append(out, WorldVoxelRef{x, y, z, v})
		}
	})
	return out
}

// ObtainSurfaceVoxelsWithinNegativeHalfspaceOfPlane returns every surface
// voxel whose cell center lies on the negative side of the plane defined
// by planePoint and outward planeNormal (i.e. dot(center - planePoint,
// normal) < 0), restricted to the object's occupied range.
func (o *Object) ObtainSurfaceVoxelsWithinNegativeHalfspaceOfPlane(planePoint, planeNormal mgl32.Vec3) []WorldVoxelRef {
	var out []WorldVoxelRef
	minC, maxC, ok := o.OccupiedRange()
	if !ok {
		return nil
	}
	n := planeNormal.Normalize()
	minX, minY, minZ := int(minC.X)*ChunkSize, int(minC.Y)*ChunkSize, int(minC.Z)*ChunkSize
	maxX, maxY, maxZ := (int(maxC.X)+1)*ChunkSize, (int(maxC.Y)+1)*ChunkSize, (int(maxC.Z)+1)*ChunkSize
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				v := o.Get(x, y, z)
				if v.IsEmpty() {
					continue
				}
				cellCenter := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}.Mul(o.VoxelExtent)
				if cellCenter.Sub(planePoint).Dot(n) < 0 && o.isSurfaceVoxel(x, y, z) {
					out = append(out, WorldVoxelRef{x, y, z, v})
				}
			}
		}
	}
	return out
}

// ModifyVoxelsWithinSphere applies mutate to every voxel (empty or not)
// whose world-space cell center lies within radius of center, in
// voxel-extent-scaled world units, and marks the affected chunks dirty.
// Callers must follow with ComputeAllDerivedState to refresh derived
// state.
func (o *Object) ModifyVoxelsWithinSphere(center mgl32.Vec3, radius float32, mutate func(Voxel) Voxel) {
	o.forEachVoxelInSphere(center, radius, func(x, y, z int, v Voxel) {
		o.Set(x, y, z, mutate(v))
	})
}

func (o *Object) forEachVoxelInSphere(center mgl32.Vec3, radius float32, fn func(x, y, z int, v Voxel)) {
	extent := o.VoxelExtent
	if extent <= 0 {
		return
	}
	r2 := radius * radius
	minX := int(math.Floor(float64((center.X() - radius) / extent)))
	maxX := int((center.X()+radius)/extent) + 1
	minY := int(math.Floor(float64((center.Y() - radius) / extent)))
	maxY := int((center.Y()+radius)/extent) + 1
	minZ := int(math.Floor(float64((center.Z() - radius) / extent)))
	maxZ := int((center.Z()+radius)/extent) + 1

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				cellCenter := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}.Mul(extent)
				d := cellCenter.Sub(center)
				if d.Dot(d) <= r2 {
					fn(x, y, z, o.Get(x, y, z))
				}
			}
		}
	}
}
