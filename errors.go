package voxcore

import "fmt"

// InvariantViolation marks a bug, not a recoverable runtime condition:
// chunk/object state disagreeing with its own invariants. Raised via
// panic at the single point the invariant is checked, mirroring the
// teacher's panic(fmt.Sprintf(...)) style in ecs.go/schedule.go.
type InvariantViolation struct {
	Message string
	Index   int
}

func (e InvariantViolation) Error() string {
	if e.Index != 0 {
		return fmt.Sprintf("invariant violation at index %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

// NotFoundError is returned, never panicked, when a lookup by opaque id
// fails; the caller's operation becomes a no-op.
type NotFoundError struct {
	Kind string // "voxel object", "rigid body", "collidable", ...
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ConfigError is returned by the config structs' Validate methods when
// they reject a field value (for example a NaN or non-positive voxel
// extent). Constructors such as voxel.NewObject and
// SetupSphericalCollidable do not validate and never return it.
type ConfigError struct {
	Field string
	Value any
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %q: %v", e.Field, e.Value)
}

// TaskError wraps a single scheduled task's failure with its id.
type TaskError struct {
	TaskID string
	Err    error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.TaskID, e.Err)
}

func (e TaskError) Unwrap() error { return e.Err }

// TaskErrors aggregates every failure from one execute_and_wait phase,
// surfaced to the caller at phase end (§7) rather than aborting other
// tasks mid-phase.
type TaskErrors []TaskError

func (e TaskErrors) Error() string {
	if len(e) == 0 {
		return "no task errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%d task errors (first: %v)", len(e), e[0])
}

func (e TaskErrors) HasErrors() bool { return len(e) > 0 }
