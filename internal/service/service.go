// Package service defines the backend-agnostic interface for exporting tasks.
package service

import (
	"context"
	"errors"
)

// Sentinel errors returned by Service implementations.
// Implementations wrap them so callers can use errors.Is.
var (
	// ErrNotFound indicates a list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates a list name matched more than one list.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrAuth indicates missing, expired or revoked credentials.
	ErrAuth = errors.New("auth error")

	// ErrTimeout indicates the backend did not answer in time.
	ErrTimeout = errors.New("request timed out")
)

// Service is the remote task backend the menu exports to.
// Commands and the menu never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous when there is no single match.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a task in the list and returns it with its remote ID.
	CreateTask(ctx context.Context, listID string, task Task) (Task, error)

	// CompleteTask marks a remote task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}
