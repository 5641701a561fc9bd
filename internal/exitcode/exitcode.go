// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including leaving the menu.
	Success = 0

	// UserError indicates a user error (bad args, bad config, unreadable input).
	UserError = 1

	// AuthError indicates missing or invalid Google credentials.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3

	// Interrupted indicates the menu was stopped by SIGINT or SIGTERM.
	Interrupted = 130
)
