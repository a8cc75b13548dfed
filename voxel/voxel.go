// Package voxel implements the sparse chunked voxel volume: the voxel
// primitive, chunks, chunked objects, their derived state (signed distance
// field, surface mesh, inertial properties, connected regions) and the
// geometric operations built on top of them (contact generation, region
// splitting).
package voxel

// DebugAssertions gates the invariant checks in WithSDF. Left on by
// default; a host embedding voxel in a release build can turn it off to
// skip the per-write check on the hot voxel-edit path, mirroring the
// panic-on-invariant idiom used elsewhere in this module (see ecs.go's
// panic("component should be a struct")) without this leaf package
// importing the root package's InvariantViolation type.
var DebugAssertions = true

// TypeId identifies a voxel material/type. Zero is reserved for "empty".
type TypeId uint8

const TypeEmpty TypeId = 0

// Flags are per-voxel bits orthogonal to type and distance.
type Flags uint8

const (
	FlagNone Flags = 0
	// FlagLocked is a caller-defined marker bit. Nothing in this package
	// reads it; in particular the region splitter moves locked voxels like
	// any other.
	FlagLocked Flags = 1 << iota
)

// Voxel is the voxel primitive: a material tag, an 8-bit signed distance
// sample and a flag byte, three bytes in all. SignedDistance is quantized to [-127, 127]; the
// mapping to world units is per-object (see Object.VoxelExtent).
type Voxel struct {
	Type           TypeId
	SignedDistance int8
	Flags          Flags
}

// IsEmpty reports whether the voxel carries no material.
func (v Voxel) IsEmpty() bool {
	return v.Type == TypeEmpty
}

// WithType returns a copy of v with its type replaced. Setting TypeEmpty
// does not clear SignedDistance; callers that want a fully empty voxel
// should use EmptyVoxel().
func (v Voxel) WithType(t TypeId) Voxel {
	v.Type = t
	return v
}

// WithSDF returns a copy of v with its quantized signed distance replaced.
// Positive means inside the surface, negative means outside: an empty
// voxel must carry SignedDistance <= 0 and a non-empty voxel must carry
// SignedDistance >= 0. A write that would contradict the voxel's type is
// clamped to zero, and - when DebugAssertions is set - panics, since it
// signals a caller computed the wrong sign rather than a reachable
// runtime condition.
func (v Voxel) WithSDF(d int8) Voxel {
	if v.IsEmpty() && d > 0 {
		if DebugAssertions {
			panic("voxel: WithSDF wrote a positive distance on an empty voxel")
		}
		d = 0
	}
	if !v.IsEmpty() && d < 0 {
		if DebugAssertions {
			panic("voxel: WithSDF wrote a negative distance on a non-empty voxel")
		}
		d = 0
	}
	v.SignedDistance = d
	return v
}

// EmptyVoxel is the canonical zero-value voxel: empty type, maximally
// outside (distance saturated negative; positive = inside the surface,
// negative = outside), no flags.
func EmptyVoxel() Voxel {
	return Voxel{Type: TypeEmpty, SignedDistance: -127}
}

// QuantizeSDF maps a world-space signed distance (in metres) to the 8-bit
// representation, using voxelExtent as the per-object scale resolved in
// SPEC_FULL's OPEN QUESTION RESOLUTIONS (d_quantized = d_world * 127 /
// voxelExtent). Values are clamped to the representable range.
func QuantizeSDF(worldDistance, voxelExtent float32) int8 {
	if voxelExtent <= 0 {
		return 0
	}
	scaled := worldDistance * 127.0 / voxelExtent
	if scaled > 127 {
		return 127
	}
	if scaled < -127 {
		return -127
	}
	return int8(scaled)
}

// DequantizeSDF recovers the world-space signed distance from a voxel's
// quantized sample.
func DequantizeSDF(d int8, voxelExtent float32) float32 {
	return float32(d) * voxelExtent / 127.0
}
