package command

import (
	"context"
	"flag"
	"fmt"

	"github.com/joeycumines/one-shot-calc/internal/calculator"
	"github.com/joeycumines/one-shot-calc/internal/config"
)

// EvalCommand feeds keys to the calculator non-interactively.
type EvalCommand struct {
	*BaseCommand
	config *config.Config
	log    logFlags
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(cfg *config.Config) *EvalCommand {
	return &EvalCommand{
		BaseCommand: NewBaseCommand(
			"eval",
			"Press calculator keys and print the display",
			"eval [options] keys...",
		),
		config: cfg,
	}
}

// SetupFlags registers the logging flags.
func (c *EvalCommand) SetupFlags(fs *flag.FlagSet) {
	c.log.register(fs)
}

// Execute presses each key in args. An argument is either a key name such
// as Enter, Escape or Backspace, an operator name such as "divide", or a run
// of single-character keys like "12+3=" or "6÷3=". Spaces are ignored.
// Alerts are reported on stderr and evaluation continues.
func (c *EvalCommand) Execute(ctx context.Context, args []string, stdio IO) error {
	actions, err := splitKeys(args)
	if err != nil {
		return err
	}

	s, err := openSession(c.config, c.Name(), c.log, stdio.Err)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, a := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		f := s.calc.Handle(a, nil)
		if f.Alert != "" {
			_, _ = fmt.Fprintf(stdio.Err, "Alert: %s\n", f.Alert)
		}
	}

	d := s.calc.Frame().Display
	if d.Previous != "" {
		_, _ = fmt.Fprintln(stdio.Out, d.Previous)
	}
	_, _ = fmt.Fprintln(stdio.Out, d.Current)
	return nil
}

func splitKeys(args []string) ([]calculator.Action, error) {
	var actions []calculator.Action
	for _, arg := range args {
		if len(arg) > 1 {
			if a, ok := keyOrOperator(arg); ok {
				actions = append(actions, a)
				continue
			}
		}
		for _, r := range arg {
			if r == ' ' {
				continue
			}
			a, ok := keyOrOperator(string(r))
			if !ok {
				return nil, fmt.Errorf("unknown key %q in %q", string(r), arg)
			}
			actions = append(actions, a)
		}
	}
	return actions, nil
}

// keyOrOperator resolves a keyboard key, then an operator name or glyph.
func keyOrOperator(k string) (calculator.Action, bool) {
	if a, ok := calculator.KeyAction(k); ok {
		return a, true
	}
	if op, ok := calculator.ParseOperator(k); ok {
		return calculator.Op(op), true
	}
	return calculator.Action{}, false
}
