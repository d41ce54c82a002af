package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
)

// ErrUnknownCommand is returned by Get for names that were never registered.
var ErrUnknownCommand = errors.New("unknown command")

// Registry holds the available commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get returns the command called name.
func (r *Registry) Get(name string) (Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// List returns the registered command names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run parses args[0] as the command name (defaultName when args is empty),
// parses that command's flags from the rest, and executes it.
func (r *Registry) Run(ctx context.Context, defaultName string, args []string, stdio IO) error {
	name := defaultName
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	if name == "-h" || name == "--help" {
		name, args = "help", nil
	}

	cmd, err := r.Get(name)
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Err, "Unknown command: %s\n", name)
		_, _ = fmt.Fprintln(stdio.Err, "Use 'calc help' to see available commands.")
		return err
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stdio.Err, "Usage: calc %s\n\n%s\n", cmd.Usage(), cmd.Description())
		if hasFlags(cmd) {
			_, _ = fmt.Fprintln(stdio.Err, "\nOptions:")
			fs.PrintDefaults()
		}
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	return cmd.Execute(ctx, fs.Args(), stdio)
}

func hasFlags(cmd Command) bool {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetupFlags(fs)
	var found bool
	fs.VisitAll(func(*flag.Flag) { found = true })
	return found
}
