package voxcore

import (
	"reflect"
	"slices"
)

// Query1 and Query2 are the ECS's entire query surface. The domain never
// needs more than two components in lockstep - mod_lifecycle.go's sweep
// inspects LifetimeComponent alone, entity.go's motion-driver system
// walks MotionDriverComponent+Transform pairs - so the teacher's
// general-purpose Query3..Query5 engine and its WithTypes/WithAnyTypes
// filters never get exercised here and are not carried.
type Query1[A any] struct {
	ecs     *Ecs
	without []componentId
}
type Query2[A, B any] struct {
	ecs     *Ecs
	without []componentId
}

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }

// WithoutTypes excludes entities whose archetype carries any of the
// given component types. It filters on component type only, never on a
// component's value.
func (q Query1[A]) WithoutTypes(types ...any) Query1[A] {
	q.without = append(q.without, idsOfValues(q.ecs, types...)...)
	return q
}
func (q Query2[A, B]) WithoutTypes(types ...any) Query2[A, B] {
	q.without = append(q.without, idsOfValues(q.ecs, types...)...)
	return q
}

func idsOfValues(ecs *Ecs, vals ...any) []componentId {
	ids := make([]componentId, 0, len(vals))
	for _, v := range vals {
		t := reflect.TypeOf(v)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		ids = append(ids, ecs.getComponentId(t))
	}
	return ids
}

// Archetype key membership helpers (use sorted key for BinarySearch).
func archHas(arch *archetype, id componentId) bool {
	_, found := slices.BinarySearch(arch.key, id)
	return found
}
func hasAll(arch *archetype, ids []componentId) bool {
	for _, id := range ids {
		if !archHas(arch, id) {
			return false
		}
	}
	return true
}
func hasAny(arch *archetype, ids []componentId) bool {
	for _, id := range ids {
		if archHas(arch, id) {
			return true
		}
	}
	return false
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}
func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}

// Map visits every entity carrying an A, in archetype order, stopping
// early if m returns false.
func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	id1 := identifyComponents1[A](q.ecs)
	req := []componentId{id1}

	for _, arch := range q.ecs.archetypes {
		if len(q.without) > 0 && hasAny(arch, q.without) {
			continue
		}
		if !hasAll(arch, req) {
			continue
		}
		comps1, ok := arch.componentData[id1].([]A)
		if !ok {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, &comps1[row]) {
				return
			}
		}
	}
}

// Map visits every entity carrying both an A and a B, in archetype
// order, stopping early if m returns false.
func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	req := []componentId{id1, id2}

	for _, arch := range q.ecs.archetypes {
		if len(q.without) > 0 && hasAny(arch, q.without) {
			continue
		}
		if !hasAll(arch, req) {
			continue
		}
		comps1, ok1 := arch.componentData[id1].([]A)
		comps2, ok2 := arch.componentData[id2].([]B)
		if !ok1 || !ok2 {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, &comps1[row], &comps2[row]) {
				return
			}
		}
	}
}
