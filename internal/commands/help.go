package commands

import (
	"context"
	"flag"
	"fmt"

	"taskmenu/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskmenu help" }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprint(env.Out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskmenu                                   Start the interactive task menu
  taskmenu run [common flags] [--no-seed] [--list <list-name>]
  taskmenu login [common flags]              Authorize export to Google Tasks
  taskmenu logout [common flags]
  taskmenu help
  taskmenu version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Run flags:
  --no-seed        Start with an empty task list
  --list <name>    Google Tasks list used by the export option
`
