// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"taskmenu/internal/config"
	"taskmenu/internal/service"
)

// ConnectFunc opens the remote backend on demand.
type ConnectFunc func(ctx context.Context) (service.Service, error)

// Env carries what a command needs for one invocation.
type Env struct {
	// Config is always provided (config dir, paths, settings).
	Config *config.Config

	// Logger writes leveled diagnostics to stderr.
	Logger *log.Logger

	// Connect opens the export backend lazily. It may be nil.
	Connect ConnectFunc

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string) int
}
