package voxcore

import (
	"math"

	"github.com/voxcore/voxcore/voxel"
)

// VoxelConfig is §6's voxel configuration surface: chunk edge length
// and per-object voxel extent (the scale the SDF quantisation in
// voxel.QuantizeSDF is expressed against).
//
// ChunkEdgeVoxelCount is validated against voxel.ChunkSize rather than
// against a standalone 16|32 literal: Chunk stores its voxels in a
// compile-time-sized array ([chunkVolume]Voxel), so the edge length is
// not actually runtime-configurable, and a config value that disagreed
// with the compiled-in constant would silently produce chunks of the
// wrong size instead of the requested one.
type VoxelConfig struct {
	ChunkEdgeVoxelCount int // must equal voxel.ChunkSize
	VoxelExtentMetres   float32
}

// NewDefaultVoxelConfig returns the §6 defaults: a chunk edge matching
// voxel.ChunkSize and a 0.1m voxel extent.
func NewDefaultVoxelConfig() VoxelConfig {
	return VoxelConfig{ChunkEdgeVoxelCount: voxel.ChunkSize, VoxelExtentMetres: 0.1}
}

// Validate rejects NaN/non-positive extents and any ChunkEdgeVoxelCount
// that disagrees with the compiled-in voxel.ChunkSize, per §7's
// ConfigError kind.
func (c VoxelConfig) Validate() error {
	if c.ChunkEdgeVoxelCount != voxel.ChunkSize {
		return ConfigError{Field: "ChunkEdgeVoxelCount", Value: c.ChunkEdgeVoxelCount}
	}
	if math.IsNaN(float64(c.VoxelExtentMetres)) || c.VoxelExtentMetres <= 0 {
		return ConfigError{Field: "VoxelExtentMetres", Value: c.VoxelExtentMetres}
	}
	return nil
}

// MesherConfig is §6's mesher configuration surface.
type MesherConfig struct {
	IsoValue      float32
	SmoothNormals bool
}

func NewDefaultMesherConfig() MesherConfig {
	return MesherConfig{IsoValue: 0.0, SmoothNormals: true}
}

// MediumConfig describes the ambient medium physics substeps against.
type MediumConfig struct {
	Density         float32
	DynamicViscosity float32
}

// PhysicsConfig is §6's physics configuration surface.
type PhysicsConfig struct {
	Enabled         bool
	SubstepCount    uint32
	SpeedMultiplier float64
	Medium          MediumConfig
}

func NewDefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Enabled:         true,
		SubstepCount:    1,
		SpeedMultiplier: 1.0,
		Medium:          MediumConfig{Density: 1.2, DynamicViscosity: 1.8e-5},
	}
}

func (c PhysicsConfig) Validate() error {
	if c.SubstepCount == 0 {
		return ConfigError{Field: "SubstepCount", Value: c.SubstepCount}
	}
	if math.IsNaN(c.SpeedMultiplier) || c.SpeedMultiplier <= 0 {
		return ConfigError{Field: "SpeedMultiplier", Value: c.SpeedMultiplier}
	}
	return nil
}

// ConstraintSolverConfig is §6's constraint solver tuning surface; the
// solver itself is an external collaborator (ConstraintSolver), this
// struct only carries the knobs a host implementation typically wants.
type ConstraintSolverConfig struct {
	VelocityIterations        uint32
	PositionIterations        uint32
	OldImpulseWeight          float32 // [0, 1]
	PositionalCorrectionFactor float32 // [0, 1]
}

func NewDefaultConstraintSolverConfig() ConstraintSolverConfig {
	return ConstraintSolverConfig{
		VelocityIterations:         8,
		PositionIterations:         3,
		OldImpulseWeight:           0.8,
		PositionalCorrectionFactor: 0.2,
	}
}

func (c ConstraintSolverConfig) Validate() error {
	if c.OldImpulseWeight < 0 || c.OldImpulseWeight > 1 {
		return ConfigError{Field: "OldImpulseWeight", Value: c.OldImpulseWeight}
	}
	if c.PositionalCorrectionFactor < 0 || c.PositionalCorrectionFactor > 1 {
		return ConfigError{Field: "PositionalCorrectionFactor", Value: c.PositionalCorrectionFactor}
	}
	return nil
}

// GravityConfig is §6's gravity configuration surface.
type GravityConfig struct {
	GravitationalConstant float32
}

func NewDefaultGravityConfig() GravityConfig {
	return GravityConfig{GravitationalConstant: 1.0}
}

// GameLoopConfig is §6's game loop configuration surface. MaxFPS == 0
// means uncapped, matching the spec's Option<NonZero<u32>>.
type GameLoopConfig struct {
	MaxFPS uint32
}

func NewDefaultGameLoopConfig() GameLoopConfig {
	return GameLoopConfig{MaxFPS: 0}
}
