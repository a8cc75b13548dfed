package voxcore

import (
	"fmt"
	"sync"
)

// TaskID identifies a scheduled task; unlike the opaque uuid ids used
// elsewhere, task ids are caller-chosen and stable (dependency edges
// reference them directly), so they're plain strings.
type TaskID string

// Task is one scheduled unit of work (C10): an id, the task ids it
// must wait on, and an independent set of tags selecting which phases
// it participates in. Per SPEC_FULL's Supplemented Feature 4, tags and
// dependency edges are deliberately two separate fields rather than one
// combined key — a task can belong to several phases while still having
// a fixed place in the dependency order.
type Task struct {
	ID        TaskID
	DependsOn []TaskID
	Tags      []string
	Run       func(ctx any) error
}

// Scheduler holds the task graph and runs a bounded worker pool across
// it. Tasks are short, side-effecting, and never block on user input
// (§5); the scheduler itself performs no IO.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[TaskID]Task
	workers int
}

// NewScheduler constructs a scheduler with a fixed-size worker pool.
// workers <= 0 is treated as 1.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = 1
	}
	return &Scheduler{tasks: make(map[TaskID]Task), workers: workers}
}

// Register adds or replaces a task definition.
func (s *Scheduler) Register(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

func hasTag(tags []string, tagSet map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := tagSet[t]; ok {
			return true
		}
	}
	return false
}

// ExecuteAndWait runs every registered task whose tag set intersects
// tagSet, in dependency order, across the worker pool, and returns only
// once every selected task has completed or failed (bulk-synchronous
// per §5). Dependency edges are honoured only among the selected tasks;
// a dependency on an unselected task is assumed already satisfied by an
// earlier phase and is not pulled in.
func (s *Scheduler) ExecuteAndWait(ctx any, tagSet map[string]struct{}) TaskErrors {
	s.mu.Lock()
	selected := make(map[TaskID]Task)
	for id, t := range s.tasks {
		if hasTag(t.Tags, tagSet) {
			selected[id] = t
		}
	}
	s.mu.Unlock()

	remainingDeps := make(map[TaskID]int, len(selected))
	dependents := make(map[TaskID][]TaskID)
	for id, t := range selected {
		count := 0
		for _, dep := range t.DependsOn {
			if _, ok := selected[dep]; ok {
				count++
				dependents[dep] = append(dependents[dep], id)
			}
		}
		remainingDeps[id] = count
	}

	var ready []TaskID
	for id, n := range remainingDeps {
		if n == 0 {
			ready = append(ready, id)
		}
	}

	var (
		errs   TaskErrors
		errsMu sync.Mutex
		sem    = make(chan struct{}, s.workers)
	)

	completed := 0
	for len(ready) > 0 {
		wave := ready
		ready = nil

		var wg sync.WaitGroup
		for _, id := range wave {
			task := selected[id]
			wg.Add(1)
			sem <- struct{}{}
			go func(t Task) {
				defer wg.Done()
				defer func() { <-sem }()
				if err := t.Run(ctx); err != nil {
					errsMu.Lock()
					errs = append(errs, TaskError{TaskID: string(t.ID), Err: err})
					errsMu.Unlock()
				}
			}(task)
		}
		wg.Wait()

		for _, id := range wave {
			completed++
			for _, dep := range dependents[id] {
				remainingDeps[dep]--
				if remainingDeps[dep] == 0 {
					ready = append(ready, dep)
				}
			}
		}
	}

	if completed != len(selected) {
		errs = append(errs, TaskError{
			TaskID: "scheduler",
			Err:    fmt.Errorf("dependency cycle detected among selected tasks: %d of %d completed", completed, len(selected)),
		})
	}

	return errs
}
