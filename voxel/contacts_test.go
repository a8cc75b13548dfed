package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestContactIDOrderIndependent(t *testing.T) {
	if ContactID(3, 9) != ContactID(9, 3) {
		t.Errorf("expected ContactID to be symmetric in its arguments")
	}
	if ContactID(1, 2) == ContactID(1, 3) {
		t.Errorf("expected distinct pairs to produce distinct ids")
	}
}

func TestSphereSphereContact(t *testing.T) {
	c, ok := SphereSphereContact(mgl32.Vec3{0, 0, 0}, 1, mgl32.Vec3{1.5, 0, 0}, 1)
	if !ok {
		t.Fatalf("expected overlapping spheres to produce a contact")
	}
	if c.Depth <= 0 || c.Depth > 0.5+1e-5 {
		t.Errorf("unexpected penetration depth %v", c.Depth)
	}
	expectedPos := mgl32.Vec3{0.5, 0, 0}
	if diff := c.Position.Sub(expectedPos).Len(); diff > 1e-4 {
		t.Errorf("expected contact position %v, got %v", expectedPos, c.Position)
	}

	_, ok = SphereSphereContact(mgl32.Vec3{0, 0, 0}, 1, mgl32.Vec3{10, 0, 0}, 1)
	if ok {
		t.Errorf("expected far-apart spheres to report no contact")
	}
}

func TestSpherePlaneContact(t *testing.T) {
	c, ok := SpherePlaneContact(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0.5, 0}, 1)
	if !ok {
		t.Fatalf("expected sphere penetrating the plane to produce a contact")
	}
	expectedDepth := float32(0.5)
	if diff := c.Depth - expectedDepth; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected depth %v, got %v", expectedDepth, c.Depth)
	}

	_, ok = SpherePlaneContact(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 5, 0}, 1)
	if ok {
		t.Errorf("expected sphere far above the plane to report no contact")
	}
}

func TestObjectSphereContacts(t *testing.T) {
	o := NewObject(1.0, 1.0)
	o.Generate([3]int{0, 0, 0}, [3]int{4, 4, 4}, func(x, y, z int) Voxel {
		return EmptyVoxel().WithType(1).WithSDF(100)
	})
	o.ComputeAllDerivedState()

	contacts := o.SphereContacts(mgl32.Vec3{0, 0, 0}, 2)
	if len(contacts) == 0 {
		t.Fatalf("expected contacts near the occupied corner of the object")
	}
	for _, c := range contacts {
		if c.Depth <= 0 {
			t.Errorf("expected positive penetration depth, got %v", c.Depth)
		}
	}
}

func TestObjectObjectContacts(t *testing.T) {
	a := NewObject(1.0, 1.0)
	a.Set(0, 0, 0, EmptyVoxel().WithType(1).WithSDF(100))
	a.ComputeAllDerivedState()

	b := NewObject(1.0, 1.0)
	b.Set(0, 0, 0, EmptyVoxel().WithType(1).WithSDF(100))
	b.ComputeAllDerivedState()

	identity := func(p mgl32.Vec3) mgl32.Vec3 { return p }
	contacts := ObjectObjectContacts(a, b, identity)
	if len(contacts) == 0 {
		t.Errorf("expected coincident solid voxels to produce at least one contact")
	}
}
