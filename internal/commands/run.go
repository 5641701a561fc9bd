package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"taskmenu/internal/config"
	"taskmenu/internal/exitcode"
	"taskmenu/internal/menu"
	"taskmenu/internal/taskstore"
)

func init() {
	Register(&RunCmd{})
}

// RunCmd starts the interactive menu. It is the default command.
type RunCmd struct {
	noSeed   bool
	listName string
}

// SetNoSeed disables seeding (for testing).
func (c *RunCmd) SetNoSeed(noSeed bool) {
	c.noSeed = noSeed
}

// SetListName sets the export list name (for testing).
func (c *RunCmd) SetListName(name string) {
	c.listName = name
}

func (c *RunCmd) Name() string      { return "run" }
func (c *RunCmd) Aliases() []string { return []string{"menu"} }
func (c *RunCmd) Synopsis() string  { return "Start the interactive task menu" }
func (c *RunCmd) Usage() string {
	return "taskmenu run [--no-seed] [--list <list-name>]"
}

func (c *RunCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.noSeed, "no-seed", false, "")
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *RunCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	cfg := env.Config
	store := taskstore.New()
	if !c.noSeed && cfg.Settings.SeedExamples {
		seed(env, store, cfg.Settings)
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.Settings.ExportList
	}

	opts := menu.Options{
		In:         env.In,
		Out:        env.Out,
		ErrOut:     env.ErrOut,
		Logger:     env.Logger,
		Quiet:      cfg.Quiet,
		ExportList: listName,
	}
	if env.Connect != nil {
		opts.Connect = menu.ConnectFunc(env.Connect)
	}

	err := menu.New(store, opts).Run(ctx)
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, context.Canceled):
		env.Logger.Debug("menu interrupted")
		return exitcode.Interrupted
	default:
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}
}

// seed adds the configured example tasks and completes the configured ids.
func seed(env *Env, store *taskstore.Store, s config.Settings) {
	for _, desc := range s.Seed {
		store.Add(desc)
	}
	for _, id := range s.SeedCompleted {
		if !store.MarkComplete(id) {
			env.Logger.Warn("seed_completed references unknown task", "id", id)
		}
	}
	env.Logger.Debug("seeded tasks", "count", store.Len())
}
