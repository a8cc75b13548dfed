package voxcore

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxcore/voxcore/voxel"
)

// voxelObjectStore is the core's own VoxelObjectManager implementation:
// one lock guarding the id→object map, matching the "one lock per
// object store" discipline from §5 (objects themselves are independent,
// but the store's membership is a single shared resource).
type voxelObjectStore struct {
	mu      sync.RWMutex
	objects map[VoxelObjectID]*voxel.Object
}

// NewVoxelObjectStore constructs an empty VoxelObjectManager.
func NewVoxelObjectStore() VoxelObjectManager {
	return &voxelObjectStore{objects: make(map[VoxelObjectID]*voxel.Object)}
}

func (s *voxelObjectStore) Create(object *voxel.Object) VoxelObjectID {
	id := newVoxelObjectID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[id] = object
	return id
}

func (s *voxelObjectStore) Get(id VoxelObjectID) (*voxel.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[id]
	return obj, ok
}

func (s *voxelObjectStore) GetMut(id VoxelObjectID) (*voxel.Object, bool) {
	return s.Get(id)
}

func (s *voxelObjectStore) Remove(id VoxelObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	return true
}

func (s *voxelObjectStore) Iter() map[VoxelObjectID]*voxel.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[VoxelObjectID]*voxel.Object, len(s.objects))
	for k, v := range s.objects {
		out[k] = v
	}
	return out
}

// localCollidable is the closed set of shapes collisionWorld dispatches
// contact generation over: a sphere, a plane, or a reference to a voxel
// object living in a VoxelObjectManager.
type localCollidable struct {
	sphere *SphereShape
	plane  *PlaneShape
	voxel  *VoxelObjectID
}

// collisionWorld is the core's own CollisionWorld implementation,
// generic in spirit over the three local shapes the way §6 describes
// (see collaborators.go's CollisionWorld doc comment for why Go
// expresses this as one concrete interface rather than `CollisionWorld[C]`).
type collisionWorld struct {
	mu         sync.RWMutex
	objects    VoxelObjectManager
	collidables map[CollidableID]localCollidable
}

// NewCollisionWorld constructs a CollisionWorld backed by objects for
// resolving VoxelObjectRef collidables.
func NewCollisionWorld(objects VoxelObjectManager) CollisionWorld {
	return &collisionWorld{
		objects:     objects,
		collidables: make(map[CollidableID]localCollidable),
	}
}

func (w *collisionWorld) AddCollidable(localShape any) CollidableID {
	id := newCollidableID()
	w.mu.Lock()
	defer w.mu.Unlock()

	switch shape := localShape.(type) {
	case SphereShape:
		w.collidables[id] = localCollidable{sphere: &shape}
	case PlaneShape:
		w.collidables[id] = localCollidable{plane: &shape}
	case VoxelObjectID:
		w.collidables[id] = localCollidable{voxel: &shape}
	default:
		panic(InvariantViolation{Message: "unrecognised local collidable shape"})
	}
	return id
}

func (w *collisionWorld) RemoveCollidable(id CollidableID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.collidables, id)
}

// ForEachContact runs voxel-object-vs-voxel-object contact generation
// (C7) across every pair of voxel collidables currently registered.
// Sphere/plane collidables require world-space positions the core does
// not own (those live on the RigidBodyManager), so pairing them in is
// left to a host-level driver that resolves positions first and calls
// voxel.SphereSphereContact/SpherePlaneContact directly; this method
// only covers the case the core alone has enough state to resolve.
func (w *collisionWorld) ForEachContact(sink func(voxel.Contact)) {
	w.mu.RLock()
	ids := make([]CollidableID, 0, len(w.collidables))
	for id, c := range w.collidables {
		if c.voxel != nil {
			ids = append(ids, id)
		}
	}
	w.mu.RUnlock()

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			w.mu.RLock()
			a, aok := w.collidables[ids[i]]
			b, bok := w.collidables[ids[j]]
			w.mu.RUnlock()
			if !aok || !bok {
				continue
			}
			objA, ok := w.objects.Get(*a.voxel)
			if !ok {
				continue
			}
			objB, ok := w.objects.Get(*b.voxel)
			if !ok {
				continue
			}
			identity := func(p mgl32.Vec3) mgl32.Vec3 { return p }
			for _, c := range voxel.ObjectObjectContacts(objA, objB, identity) {
				sink(c)
			}
		}
	}
}
