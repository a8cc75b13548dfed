package voxcore

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/voxcore/voxcore/voxel"
)

// Opaque ids, minted the same way the teacher mints AssetId in
// mod_assets.go: a random uuid string, never a sequential index, so
// ids remain stable across manager reshuffles. RigidBodyID and
// SceneGraphNodeID are minted by their owning external collaborator
// (§6 describes RigidBodyManager/SceneGraph as consumed, not exposed,
// interfaces), so only the two ids the core itself mints get
// constructors here.
type VoxelObjectID string
type CollidableID string
type RigidBodyID string
type SceneGraphNodeID string

func newVoxelObjectID() VoxelObjectID { return VoxelObjectID(uuid.NewString()) }
func newCollidableID() CollidableID   { return CollidableID(uuid.NewString()) }

// --- Collaborator interfaces consumed by the core (§6) ---

// GraphicsDevice is the handle mesh buffers are uploaded through. The
// core never depends on a concrete implementation; it only needs
// somewhere to hand finished ChunkMesh buffers.
type GraphicsDevice interface {
	CreateBuffer(sizeBytes int) (bufferHandle any, err error)
	WriteBuffer(handle any, data []byte) error
}

// RigidBodyManager is the external owner of rigid-body state. C11's
// gravity aggregator and C13's setup/teardown hooks read and write
// through this interface only; the core stores no body state itself.
type RigidBodyManager interface {
	Dynamic(id RigidBodyID) (mass float32, position mgl32.Vec3, ok bool)
	Kinematic(id RigidBodyID) (position mgl32.Vec3, ok bool)
	ApplyForceAtCenterOfMass(id RigidBodyID, force mgl32.Vec3)
	SynchronizeMomentumFromVelocity(id RigidBodyID)
}

// ConstraintSolver consumes the contact manifolds C7 produces and
// returns impulses for the rigid-body integrator to apply; a full
// constraint solver is an explicit Non-goal, so this core never
// implements one itself.
type ConstraintSolver interface {
	Solve(contacts []voxel.Contact) (impulses []mgl32.Vec3)
}

// SceneGraph is the external owner of the transform hierarchy that
// C13's SceneGraphNodeRef components point into.
type SceneGraph interface {
	CreateGroupNode(parent SceneGraphNodeID) SceneGraphNodeID
	CreateModelInstanceNode(parent SceneGraphNodeID, object VoxelObjectID) SceneGraphNodeID
	RemoveModelInstanceNode(id SceneGraphNodeID)
	UpdateGroupToWorldTransform(id SceneGraphNodeID, transform Transform)
}

// --- Collaborator interfaces exposed by the core (§6) ---

// VoxelObjectManager owns the Object store; the core's own
// implementation lives in mod_voxelobjects.go.
type VoxelObjectManager interface {
	Create(object *voxel.Object) VoxelObjectID
	Get(id VoxelObjectID) (*voxel.Object, bool)
	GetMut(id VoxelObjectID) (*voxel.Object, bool)
	Remove(id VoxelObjectID) bool
	Iter() map[VoxelObjectID]*voxel.Object
}

// CollisionWorld is generic in spirit over the local shape
// representation (sphere, plane, voxel object); since Go interfaces
// can't be generic over the field they dispatch on the way the spec's
// `CollisionWorld<C>` is, it is expressed here as one concrete
// interface accepting `any` local shape, with the three known shapes
// (SphereShape, PlaneShape, VoxelObjectID) as the closed set C13's
// Setup* functions construct.
type CollisionWorld interface {
	AddCollidable(localShape any) CollidableID
	RemoveCollidable(id CollidableID)
	ForEachContact(sink func(voxel.Contact))
}
