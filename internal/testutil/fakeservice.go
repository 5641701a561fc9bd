// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskmenu/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks
	nextID int

	// Calls counts CreateTask and CompleteTask invocations.
	Calls struct {
		CreateTask   int
		CompleteTask int
	}

	// Error injection for testing
	DefaultListErr  error
	ResolveListErr  error
	CreateTaskErr   error
	CompleteTaskErr error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]service.Task),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// Tasks returns a copy of the tasks stored in a list.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks[listID]))
	copy(result, f.tasks[listID])
	return result
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, service.ErrNotFound
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	name = strings.TrimSpace(name)

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list %q: %w", name, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("list %q: %w", name, service.ErrAmbiguous)
	}
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.CreateTask++

	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}

	f.nextID++
	task.ID = fmt.Sprintf("remote-%d", f.nextID)
	if task.Status == "" {
		task.Status = service.StatusNeedsAction
	}
	f.tasks[listID] = append(f.tasks[listID], task)
	return task, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, listID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.CompleteTask++

	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	tasks, ok := f.tasks[listID]
	if !ok {
		return service.ErrNotFound
	}

	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID][i].Status = service.StatusCompleted
			return nil
		}
	}
	return service.ErrNotFound
}
