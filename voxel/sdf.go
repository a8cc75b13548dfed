package voxel

// haloSize is the SDF view's edge length: one voxel of padding on each
// side of a ChunkSize chunk, so that trilinear interpolation and central
// differences near a chunk's boundary can reach one cell past it.
const haloSize = ChunkSize + 2

// SDFView is an (N+2)^3 signed-distance sample buffer centered on a
// chunk, covering local indices [-1, ChunkSize] inclusive along each
// axis. Index 0 in the backing array corresponds to local coordinate -1.
type SDFView struct {
	coord      ChunkCoord
	generation uint64
	samples    [haloSize * haloSize * haloSize]int8
	types      [haloSize * haloSize * haloSize]TypeId
}

func haloIndex(lx, ly, lz int) int {
	x, y, z := lx+1, ly+1, lz+1
	return x + y*haloSize + z*haloSize*haloSize
}

// At returns the signed-distance sample and voxel type at local
// coordinates relative to the view's chunk, where valid indices are
// [-1, ChunkSize].
func (v *SDFView) At(lx, ly, lz int) (int8, TypeId) {
	idx := haloIndex(lx, ly, lz)
	return v.samples[idx], v.types[idx]
}

// sdfViewCache holds one SDFView per chunk coordinate, invalidated when
// the owning chunk's generation counter advances.
type sdfViewCache struct {
	views map[ChunkCoord]*SDFView
}

func newSDFViewCache() *sdfViewCache {
	return &sdfViewCache{views: make(map[ChunkCoord]*SDFView)}
}

// View returns the up-to-date SDFView for coord, building or rebuilding
// it from obj if the owning chunk's generation has advanced since it was
// last cached.
func (cache *sdfViewCache) View(obj *Object, coord ChunkCoord) *SDFView {
	c := obj.Chunk(coord)
	var gen uint64
	if c != nil {
		gen = c.Generation()
	}

	if existing, ok := cache.views[coord]; ok && existing.generation == gen {
		return existing
	}

	view := buildSDFView(obj, coord, gen)
	cache.views[coord] = view
	return view
}

func buildSDFView(obj *Object, coord ChunkCoord, generation uint64) *SDFView {
	view := &SDFView{coord: coord, generation: generation}

	base := [3]int{int(coord.X) * ChunkSize, int(coord.Y) * ChunkSize, int(coord.Z) * ChunkSize}

	for lz := -1; lz <= ChunkSize; lz++ {
		for ly := -1; ly <= ChunkSize; ly++ {
			for lx := -1; lx <= ChunkSize; lx++ {
				v := obj.Get(base[0]+lx, base[1]+ly, base[2]+lz)
				idx := haloIndex(lx, ly, lz)
				view.samples[idx] = v.SignedDistance
				view.types[idx] = v.Type
			}
		}
	}
	return view
}
