package voxel

// Component is one disconnected piece extracted by
// Object.SplitDisconnectedComponents: a standalone Object holding just
// that piece's voxels, plus its world-voxel-coordinate bounding box and
// voxel count (useful for a caller deciding, e.g., whether the piece is
// big enough to keep simulating).
type Component struct {
	Object     *Object
	Min, Max   [3]int // inclusive bounding box, in the original object's local voxel coordinates
	VoxelCount int
}

// VoxelCount returns the number of non-empty voxels across the object's
// occupied range.
func (o *Object) VoxelCount() int {
	minC, maxC, ok := o.OccupiedRange()
	if !ok {
		return 0
	}
	count := 0
	minX, minY, minZ := int(minC.X)*ChunkSize, int(minC.Y)*ChunkSize, int(minC.Z)*ChunkSize
	maxX, maxY, maxZ := (int(maxC.X)+1)*ChunkSize, (int(maxC.Y)+1)*ChunkSize, (int(maxC.Z)+1)*ChunkSize
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				if !o.Get(x, y, z).IsEmpty() {
					count++
				}
			}
		}
	}
	return count
}

// SplitDisconnectedComponents partitions o's voxels into 6-connected
// components. If the object is a single component (nothing to split) or
// its total voxel count exceeds maxVoxels (a safety limit against
// pathological flood fills over huge sparse regions), it returns nil and
// leaves o untouched. Otherwise, every component except the largest
// (by voxel count; ties keep the lowest region id) is carved out into
// its own Object, removed from o, and returned. Both o and every
// returned Component have had ComputeAllDerivedState run, so their
// mass/center-of-mass/inertia are immediately valid — conservation of
// total mass across the split falls out of recomputing both sides from
// scratch rather than an incremental proportional transfer.
func (o *Object) SplitDisconnectedComponents(maxVoxels int) []Component {
	if o.VoxelCount() > maxVoxels {
		return nil
	}

	groups := o.collectComponentVoxels()
	if len(groups) <= 1 {
		return nil
	}

	largest := int32(-1)
	largestCount := -1
	for key, refs := range groups {
		if len(refs) > largestCount || (len(refs) == largestCount && key < largest) {
			largest, largestCount = key, len(refs)
		}
	}

	var components []Component
	for key, refs := range groups {
		if key == largest {
			continue
		}
		components = append(components, o.extractComponent(refs))
	}

	o.ComputeAllDerivedState()
	return components
}

func (o *Object) collectComponentVoxels() map[int32][]WorldVoxelRef {
	groups := make(map[int32][]WorldVoxelRef)
	minC, maxC, ok := o.OccupiedRange()
	if !ok {
		return groups
	}
	minX, minY, minZ := int(minC.X)*ChunkSize, int(minC.Y)*ChunkSize, int(minC.Z)*ChunkSize
	maxX, maxY, maxZ := (int(maxC.X)+1)*ChunkSize, (int(maxC.Y)+1)*ChunkSize, (int(maxC.Z)+1)*ChunkSize
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				v := o.Get(x, y, z)
				if v.IsEmpty() {
					continue
				}
				key, ok := o.GlobalRegionID(x, y, z)
				if !ok {
					continue
				}
				groups[key] = append(groups[key], WorldVoxelRef{X: x, Y: y, Z: z, Voxel: v})
			}
		}
	}
	return groups
}

func (o *Object) extractComponent(refs []WorldVoxelRef) Component {
	newObj := NewObject(o.VoxelExtent, o.Density)
	min := [3]int{refs[0].X, refs[0].Y, refs[0].Z}
	max := min
	for _, ref := range refs {
		newObj.Set(ref.X, ref.Y, ref.Z, ref.Voxel)
		o.Set(ref.X, ref.Y, ref.Z, EmptyVoxel())

		if ref.X < min[0] {
			min[0] = ref.X
		}
		if ref.Y < min[1] {
			min[1] = ref.Y
		}
		if ref.Z < min[2] {
			min[2] = ref.Z
		}
		if ref.X > max[0] {
			max[0] = ref.X
		}
		if ref.Y > max[1] {
			max[1] = ref.Y
		}
		if ref.Z > max[2] {
			max[2] = ref.Z
		}
	}
	newObj.ComputeAllDerivedState()
	return Component{Object: newObj, Min: min, Max: max, VoxelCount: len(refs)}
}
