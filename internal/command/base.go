package command

import (
	"context"
	"flag"
	"io"
)

// IO carries a command's standard streams.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Command is a named CLI sub-command.
type Command interface {
	Name() string
	// Description is a one-line summary for the command list.
	Description() string
	// Usage is the synopsis, e.g. "history [list|clear|show N]".
	Usage() string
	// SetupFlags registers the command's flags on fs before parsing.
	SetupFlags(fs *flag.FlagSet)
	// Execute runs the command with the arguments left after flag parsing.
	Execute(ctx context.Context, args []string, stdio IO) error
}

// BaseCommand implements the descriptive half of Command for embedding.
type BaseCommand struct {
	name        string
	description string
	usage       string
}

// NewBaseCommand creates a BaseCommand.
func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{name: name, description: description, usage: usage}
}

func (c *BaseCommand) Name() string        { return c.name }
func (c *BaseCommand) Description() string { return c.description }
func (c *BaseCommand) Usage() string       { return c.usage }

// SetupFlags registers no flags.
func (c *BaseCommand) SetupFlags(*flag.FlagSet) {}
