package voxcore

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// gravityBody mirrors one {id, mass, position} triple synchronized
// from the RigidBodyManager each pass, plus the accumulated force the
// pass is building up.
type gravityBody struct {
	id       RigidBodyID
	mass     float32
	position mgl32.Vec3
	force    mgl32.Vec3
	drag     DragProperties
}

// GravityAggregator is C11: an O(N²) pairwise dynamic-gravity force
// contributor, folded together with per-body "detailed drag" per
// SPEC_FULL's Supplemented Feature 2. Constant G is configurable.
type GravityAggregator struct {
	config GravityConfig
	bodies []gravityBody
}

// NewGravityAggregator constructs an aggregator with the given config.
func NewGravityAggregator(config GravityConfig) *GravityAggregator {
	return &GravityAggregator{config: config}
}

// Sync replaces the tracked body set from the manager's current state,
// pairing each RigidBodyRef with its mass/position (dynamic bodies
// only — kinematic bodies have no mass to attract with or be attracted
// by) and its drag coefficients, if any.
func (g *GravityAggregator) Sync(manager RigidBodyManager, refs []RigidBodyRef, drags map[RigidBodyID]DragProperties) {
	g.bodies = g.bodies[:0]
	for _, ref := range refs {
		if ref.Kind != RigidBodyDynamic {
			continue
		}
		mass, pos, ok := manager.Dynamic(ref.ID)
		if !ok || mass <= 0 {
			continue
		}
		g.bodies = append(g.bodies, gravityBody{
			id:       ref.ID,
			mass:     mass,
			position: pos,
			drag:     drags[ref.ID],
		})
	}
}

// ComputeAndApply zeroes forces, performs the O(N²) pairwise gravity
// summation plus linear drag, then applies the resulting force at each
// body's centre of mass through the manager.
func (g *GravityAggregator) ComputeAndApply(manager RigidBodyManager, velocities map[RigidBodyID]mgl32.Vec3) {
	for i := range g.bodies {
		g.bodies[i].force = mgl32.Vec3{}
	}

	G := g.config.GravitationalConstant
	for i := 0; i < len(g.bodies); i++ {
		for j := i + 1; j < len(g.bodies); j++ {
			a, b := &g.bodies[i], &g.bodies[j]
			delta := b.position.Sub(a.position)
			distSqr := delta.LenSqr()
			if distSqr < 1e-12 {
				continue
			}
			dist := float32(math.Sqrt(float64(distSqr)))
			magnitude := G * a.mass * b.mass / distSqr
			dir := delta.Mul(1.0 / dist)
			force := dir.Mul(magnitude)
			a.force = a.force.Add(force)
			b.force = b.force.Sub(force)
		}
	}

	for i := range g.bodies {
		body := &g.bodies[i]
		if body.drag.LinearDragCoefficient > 0 {
			if v, ok := velocities[body.id]; ok {
				drag := v.Mul(-body.drag.LinearDragCoefficient * v.Len())
				body.force = body.force.Add(drag)
			}
		}
		manager.ApplyForceAtCenterOfMass(body.id, body.force)
	}
}
