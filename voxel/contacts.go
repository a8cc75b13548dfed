package voxel

import "github.com/go-gl/mathgl/mgl32"

// Contact is the core's contact-generation output: a point, a surface
// normal (pointing from the first body toward the second in the
// sphere-sphere/sphere-plane functions below) and a
// penetration depth. Resolving contacts into impulses or constraints is
// an external collaborator's job (see ConstraintSolver in
// collaborators.go); this package only produces the geometry.
type Contact struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Depth    float32
}

// ContactID combines two opaque body ids into a single order-independent
// identifier, so the same contact reported as (a, b) or (b, a) collapses
// to one key: the smaller id occupies the high half, the larger the low
// half.
func ContactID(a, b uint32) uint64 {
	lo, hi := a, b
	if b < a {
		lo, hi = b, a
	}
	return uint64(lo)<<32 | uint64(hi)
}

// SphereSphereContact tests two spheres, returning the contact and true
// if they overlap.
func SphereSphereContact(centerA mgl32.Vec3, radiusA float32, centerB mgl32.Vec3, radiusB float32) (Contact, bool) {
	d := centerB.Sub(centerA)
	dist := d.Len()
	sumR := radiusA + radiusB
	if dist >= sumR {
		return Contact{}, false
	}
	normal := mgl32.Vec3{0, 1, 0}
	if dist > 1e-6 {
		normal = d.Mul(1.0 / dist)
	}
	depth := sumR - dist
	// Contact point sits on b's surface, matching
	// determine_sphere_sphere_contact_geometry in the original engine's
	// impact_physics collidable module.
	pos := centerB.Sub(normal.Mul(radiusB))
	return Contact{Position: pos, Normal: normal, Depth: depth}, true
}

// SpherePlaneContact tests a sphere against an infinite plane (point +
// outward unit normal), returning the contact and true if they overlap.
// The reported normal always points away from the plane.
func SpherePlaneContact(planePoint, planeNormal mgl32.Vec3, center mgl32.Vec3, radius float32) (Contact, bool) {
	n := planeNormal.Normalize()
	dist := center.Sub(planePoint).Dot(n)
	if dist >= radius {
		return Contact{}, false
	}
	depth := radius - dist
	pos := center.Sub(n.Mul(dist))
	return Contact{Position: pos, Normal: n, Depth: depth}, true
}

// SphereContacts returns one contact per surface voxel of o (in o's
// local space) that overlaps the sphere at center with the given
// radius. Each voxel is treated as a small sphere of radius
// VoxelExtent/2 centered on its cell, matching the coarseness of the
// surface-voxel query it is built from.
func (o *Object) SphereContacts(center mgl32.Vec3, radius float32) []Contact {
	refs := o.ObtainSurfaceVoxelsWithinSphere(center, radius)
	voxelRadius := o.VoxelExtent * 0.5
	var contacts []Contact
	for _, ref := range refs {
		cellCenter := mgl32.Vec3{float32(ref.X) + 0.5, float32(ref.Y) + 0.5, float32(ref.Z) + 0.5}.Mul(o.VoxelExtent)
		d := center.Sub(cellCenter)
		dist := d.Len()
		if dist >= radius+voxelRadius {
			continue
		}
		normal := mgl32.Vec3{0, 1, 0}
		if dist > 1e-6 {
			normal = d.Mul(1.0 / dist)
		}
		depth := radius + voxelRadius - dist
		pos := cellCenter.Add(normal.Mul(voxelRadius))
		contacts = append(contacts, Contact{Position: pos, Normal: normal, Depth: depth})
	}
	return contacts
}

// surfaceNormalApprox estimates an outward normal for the surface voxel
// at local coordinates (x, y, z) by summing the direction to each empty
// 6-neighbour, falling back to +Y when the voxel has no empty neighbour
// (shouldn't happen for an actual surface voxel, but keeps the function
// total).
func surfaceNormalApprox(o *Object, x, y, z int) mgl32.Vec3 {
	offsets := [6][3]float32{
		{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1},
	}
	var accum mgl32.Vec3
	for _, d := range offsets {
		if o.Get(x+int(d[0]), y+int(d[1]), z+int(d[2])).IsEmpty() {
			accum = accum.Add(mgl32.Vec3{d[0], d[1], d[2]})
		}
	}
	if accum.LenSqr() < 1e-9 {
		return mgl32.Vec3{0, 1, 0}
	}
	return accum.Normalize()
}

// ObjectContacts returns one contact per surface voxel of o (in o's
// local space, within its occupied range) whose cell center lies inside
// a point-sampled collidable: sample reports whether a world-local point
// of o is also occupied in the other body, and if so the corresponding
// penetration depth (e.g. the dequantized positive signed distance of
// the other voxel object at that point, or a fixed shell thickness for a
// non-voxel collidable).
func (o *Object) ObjectContacts(sample func(p mgl32.Vec3) (depth float32, inside bool)) []Contact {
	minC, maxC, ok := o.OccupiedRange()
	if !ok {
		return nil
	}
	var contacts []Contact
	minX, minY, minZ := int(minC.X)*ChunkSize, int(minC.Y)*ChunkSize, int(minC.Z)*ChunkSize
	maxX, maxY, maxZ := (int(maxC.X)+1)*ChunkSize, (int(maxC.Y)+1)*ChunkSize, (int(maxC.Z)+1)*ChunkSize

	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				v := o.Get(x, y, z)
				if v.IsEmpty() || !o.isSurfaceVoxel(x, y, z) {
					continue
				}
				cellCenter := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}.Mul(o.VoxelExtent)
				depth, inside := sample(cellCenter)
				if !inside {
					continue
				}
				normal := surfaceNormalApprox(o, x, y, z)
				contacts = append(contacts, Contact{Position: cellCenter, Normal: normal, Depth: depth})
			}
		}
	}
	return contacts
}

// ObjectObjectContacts generates contacts between two voxel objects
// given a transform from a's local space into b's local space. It walks
// a's surface voxels (the side with fewer expected contacts should be
// passed as a for best performance) and samples b directly.
func ObjectObjectContacts(a, b *Object, aToB func(mgl32.Vec3) mgl32.Vec3) []Contact {
	return a.ObjectContacts(func(p mgl32.Vec3) (float32, bool) {
		q := aToB(p)
		lx, ly, lz := int(q.X()/b.VoxelExtent), int(q.Y()/b.VoxelExtent), int(q.Z()/b.VoxelExtent)
		v := b.Get(lx, ly, lz)
		if v.IsEmpty() {
			return 0, false
		}
		d := DequantizeSDF(v.SignedDistance, b.VoxelExtent)
		if d <= 0 {
			return 0, false
		}
		return d, true
	})
}
