package voxel

import "github.com/go-gl/mathgl/mgl32"

// mgl32.Mat3 is a plain [9]float32 in column-major order; these helpers
// avoid depending on which arithmetic methods a given mathgl release
// exposes on the type.

func mat3Zero() mgl32.Mat3 {
	return mgl32.Mat3{}
}

func mat3Identity() mgl32.Mat3 {
	return mgl32.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func mat3Add(a, b mgl32.Mat3) mgl32.Mat3 {
	var r mgl32.Mat3
	for i := 0; i < 9; i++ {
		r[i] = a[i] + b[i]
	}
	return r
}

func mat3Sub(a, b mgl32.Mat3) mgl32.Mat3 {
	var r mgl32.Mat3
	for i := 0; i < 9; i++ {
		r[i] = a[i] - b[i]
	}
	return r
}

func mat3Scale(a mgl32.Mat3, s float32) mgl32.Mat3 {
	var r mgl32.Mat3
	for i := 0; i < 9; i++ {
		r[i] = a[i] * s
	}
	return r
}

// outer3 returns the outer product r * r^T.
func outer3(r mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3{
		r.X() * r.X(), r.Y() * r.X(), r.Z() * r.X(),
		r.X() * r.Y(), r.Y() * r.Y(), r.Z() * r.Y(),
		r.X() * r.Z(), r.Y() * r.Z(), r.Z() * r.Z(),
	}
}

// parallelAxisShift returns the inertia tensor contribution of a point
// mass translated by r away from the reference point, added to I
// (the mass's own centroidal tensor, already expressed in the same
// orientation). This is the standard parallel-axis theorem:
//
//	I_about_point = I_about_centroid + m * (dot(r,r) * Identity - outer(r,r))
func parallelAxisShift(i mgl32.Mat3, mass float32, r mgl32.Vec3) mgl32.Mat3 {
	shift := mat3Sub(mat3Scale(mat3Identity(), r.Dot(r)), outer3(r))
	return mat3Add(i, mat3Scale(shift, mass))
}

// solidCubeInertia returns the centroidal inertia tensor of a solid cube
// of uniform density with the given mass and edge length.
func solidCubeInertia(mass, edge float32) mgl32.Mat3 {
	k := mass * edge * edge / 6.0
	return mgl32.Mat3{k, 0, 0, 0, k, 0, 0, 0, k}
}
