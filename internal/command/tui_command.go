package command

import (
	"context"
	"flag"
	"fmt"

	"github.com/joeycumines/one-shot-calc/internal/config"
	"github.com/joeycumines/one-shot-calc/internal/tui"
)

// TUICommand runs the interactive calculator.
type TUICommand struct {
	*BaseCommand
	config      *config.Config
	log         logFlags
	noAltScreen bool
}

// NewTUICommand creates the tui command.
func NewTUICommand(cfg *config.Config) *TUICommand {
	return &TUICommand{
		BaseCommand: NewBaseCommand(
			"tui",
			"Run the interactive calculator (default)",
			"tui [options]",
		),
		config: cfg,
	}
}

// SetupFlags registers the tui flags.
func (c *TUICommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.noAltScreen, "no-alt-screen", false, "Draw inline instead of on the alternate screen")
	c.log.register(fs)
}

// Execute runs the terminal UI until the user quits. Logs only go to a
// configured log file, since the terminal belongs to the UI.
func (c *TUICommand) Execute(ctx context.Context, args []string, stdio IO) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	s, err := openSession(c.config, c.Name(), c.log, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	tui.ApplyColorMode(s.settings.Color, stdio.Out)
	m := tui.New(s.calc, tui.WithHistoryRows(s.settings.HistoryRows))

	s.logger.Info("starting terminal ui")
	err = tui.Run(ctx, m, stdio.In, stdio.Out, !c.noAltScreen)
	s.logger.Info("terminal ui stopped", "entries", s.calc.History().Len(), "error", err)
	return err
}
