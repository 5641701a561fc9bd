// Package taskstore holds the in-memory task list.
package taskstore

import "sync"

// Task is a single to-do item.
type Task struct {
	// ID is the 1-based creation rank. IDs are never reused.
	ID          int
	Description string
	Completed   bool
}

// Summary holds aggregate counts over a store.
type Summary struct {
	Total           int
	Completed       int
	Pending         int
	PercentComplete float64 // 0..100, unrounded
}

// Store owns an ordered list of tasks. Insertion order is id order.
// The zero value is an empty store ready for use.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Add appends a pending task and returns it.
// The description is stored as given; callers validate input.
func (s *Store) Add(description string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:          len(s.tasks) + 1,
		Description: description,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []Task {
	return s.Filter(nil)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// MarkComplete completes the task with the given id.
// Returns false if no such task exists. Completing a completed task is a no-op
// that still returns true.
func (s *Store) MarkComplete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			return true
		}
	}
	return false
}

// Filter returns the tasks for which keep returns true, in insertion order.
// A nil keep selects every task. The result never aliases the store.
func (s *Store) Filter(keep func(Task) bool) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep == nil || keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// FilterByStatus returns the tasks whose completion flag equals completed.
func (s *Store) FilterByStatus(completed bool) []Task {
	return s.Filter(byStatus(completed))
}

// PendingDescriptions returns the descriptions of all pending tasks.
func (s *Store) PendingDescriptions() []string {
	pending := s.FilterByStatus(false)
	out := make([]string, len(pending))
	for i, t := range pending {
		out[i] = t.Description
	}
	return out
}

// Summary computes totals. PercentComplete is 0 for an empty store.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			sum.Completed++
		}
	}
	sum.Pending = sum.Total - sum.Completed
	if sum.Total > 0 {
		sum.PercentComplete = float64(sum.Completed) / float64(sum.Total) * 100
	}
	return sum
}

// Map applies fn to a copy of every task in order and collects the results.
// It is a function rather than a method because methods cannot have type
// parameters.
func Map[T any](s *Store, fn func(Task) T) []T {
	tasks := s.List()
	out := make([]T, len(tasks))
	for i, t := range tasks {
		out[i] = fn(t)
	}
	return out
}

func byStatus(completed bool) func(Task) bool {
	return func(t Task) bool {
		return t.Completed == completed
	}
}
