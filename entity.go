package voxcore

import "github.com/go-gl/mathgl/mgl32"

// EntityFlags are coarse per-entity behaviour bits. EntityFlags is a
// plain uint32, and the ECS accepts only struct components (ecs.go's
// getArchetypeKey panics on anything else), so it cannot be attached to
// an entity or queried directly.
type EntityFlags uint32

const (
	FlagNone EntityFlags = 0
	FlagStatic EntityFlags = 1 << (iota - 1)
	FlagDisabled
)

// Transform is an entity's local position/orientation/scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// ReferenceFrame is the transform an entity's physics/rendering state
// is expressed relative to (its parent scene-graph node, typically).
type ReferenceFrame struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

type RigidBodyKind int

const (
	RigidBodyKinematic RigidBodyKind = iota
	RigidBodyDynamic
)

// RigidBodyRef binds an entity to a body owned by the external
// RigidBodyManager collaborator (§6); the core never stores body state
// itself.
type RigidBodyRef struct {
	ID   RigidBodyID
	Kind RigidBodyKind
}

// CollidableRef binds an entity to a shape registered in a
// CollisionWorld (§6), regardless of whether the local shape is a
// sphere, a plane, or a voxel object.
type CollidableRef struct {
	ID CollidableID
}

// VoxelObjectRef binds an entity to an Object owned by a
// VoxelObjectManager (§6).
type VoxelObjectRef struct {
	ID VoxelObjectID
}

// SceneGraphNodeRef binds an entity to a node in an external SceneGraph
// collaborator (§6).
type SceneGraphNodeRef struct {
	ID SceneGraphNodeID
}

// DragProperties is the per-body "detailed drag" coefficient pair
// folded into C11's force pass alongside gravity (SPEC_FULL Supplemented
// Feature 2).
type DragProperties struct {
	LinearDragCoefficient  float32
	AngularDragCoefficient float32
}

// SphereShape and PlaneShape are the two non-voxel local shapes a
// CollidableRef can resolve to; SetupSphericalCollidable/
// SetupPlanarCollidable register one of these with the collision world
// and hand back the id to attach to the entity.
type SphereShape struct {
	Radius float32
}

type PlaneShape struct {
	Normal mgl32.Vec3
}

// SetupSphericalCollidable registers a sphere shape with world and
// returns the CollidableRef component to attach to the owning entity.
func SetupSphericalCollidable(world CollisionWorld, radius float32) CollidableRef {
	id := world.AddCollidable(SphereShape{Radius: radius})
	return CollidableRef{ID: id}
}

// SetupPlanarCollidable registers a plane shape with world and returns
// the CollidableRef component to attach to the owning entity.
func SetupPlanarCollidable(world CollisionWorld, normal mgl32.Vec3) CollidableRef {
	id := world.AddCollidable(PlaneShape{Normal: normal})
	return CollidableRef{ID: id}
}

// SetupVoxelCollidable registers a voxel object id as a collidable
// shape and returns the CollidableRef component to attach.
func SetupVoxelCollidable(world CollisionWorld, object VoxelObjectID) CollidableRef {
	id := world.AddCollidable(object)
	return CollidableRef{ID: id}
}

// SetupDragProperties is the passthrough setup function for the drag
// component: there is no external collaborator to register with, it
// just returns the value to attach (kept as a function, matching the
// shape of the other Setup* hooks, so entity-creation call sites stay
// uniform regardless of whether a component needs external state).
func SetupDragProperties(linear, angular float32) DragProperties {
	return DragProperties{LinearDragCoefficient: linear, AngularDragCoefficient: angular}
}

// MotionDriver is a per-entity scripted motion function, invoked by the
// motion-driver system each frame; entities with one but no RigidBodyRef
// are kinematic-only (e.g. orbiting lights).
type MotionDriver func(dt float64, t *Transform)

// MotionDriverComponent wraps a MotionDriver so it can be attached to an
// entity: the ECS's archetype key only accepts struct components
// (ecs.go's getArchetypeKey), so the bare func type is never stored
// directly.
type MotionDriverComponent struct {
	Fn MotionDriver
}

// SetupMotionDriver is the passthrough setup function for motion
// drivers, mirroring SetupDragProperties.
func SetupMotionDriver(fn MotionDriver) MotionDriverComponent {
	return MotionDriverComponent{Fn: fn}
}

// TeardownCollidable removes a collidable previously registered by one
// of the Setup*Collidable functions. Entity removal (Commands.RemoveEntity
// plus this dispatch) is the symmetric counterpart to entity creation's
// per-component setup.
func TeardownCollidable(world CollisionWorld, ref CollidableRef) {
	world.RemoveCollidable(ref.ID)
}

// motionDriverSystem advances every entity with a MotionDriverComponent +
// Transform each frame; installed by LifecycleModule alongside the
// lifetime system.
func motionDriverSystem(time *Time, cmd *Commands) {
	dt := time.Dt
	if dt <= 0 {
		return
	}
	MakeQuery2[MotionDriverComponent, Transform](cmd).Map(func(eid EntityId, driver *MotionDriverComponent, t *Transform) bool {
		driver.Fn(dt, t)
		return true
	})
}
