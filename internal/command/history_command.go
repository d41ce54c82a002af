package command

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/joeycumines/one-shot-calc/internal/calculator"
	"github.com/joeycumines/one-shot-calc/internal/config"
	"github.com/joeycumines/one-shot-calc/internal/history"
)

// HistoryCommand lists, shows and clears the history log.
type HistoryCommand struct {
	*BaseCommand
	config *config.Config
	log    logFlags
	yes    bool
	asJSON bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{
		BaseCommand: NewBaseCommand(
			"history",
			"List, show or clear past calculations",
			"history [options] [list | show N | clear]",
		),
		config: cfg,
	}
}

// SetupFlags registers the history flags.
func (c *HistoryCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "Clear without asking for confirmation")
	fs.BoolVar(&c.asJSON, "json", false, "Print records as JSON")
	c.log.register(fs)
}

// Execute runs the history sub-command; list is the default.
func (c *HistoryCommand) Execute(ctx context.Context, args []string, stdio IO) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	var index int
	switch {
	case sub == "show" && len(args) == 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		index = n
	case (sub == "list" || sub == "clear") && len(args) == 0:
	case sub == "list" || sub == "clear" || sub == "show":
		return fmt.Errorf("usage: calc %s", c.Usage())
	default:
		return fmt.Errorf("unknown history command: %s", sub)
	}

	s, err := openSession(c.config, c.Name(), c.log, stdio.Err)
	if err != nil {
		return err
	}
	defer s.Close()

	switch sub {
	case "show":
		rec, ok := s.calc.History().Entry(index)
		if !ok {
			return fmt.Errorf("no history entry %d (have %d)", index, s.calc.History().Len())
		}
		return c.print(stdio, []history.Record{rec}, index)

	case "clear":
		before := s.calc.History().Len()
		if before == 0 {
			_, _ = fmt.Fprintln(stdio.Out, "History is already empty.")
			return nil
		}
		var confirmer history.Confirmer = history.Confirmed
		if !c.yes {
			confirmer = newPromptConfirmer(stdio.In, stdio.Out)
		}
		if f := s.calc.Handle(calculator.ClearHistory(), confirmer); len(f.History) == 0 {
			_, _ = fmt.Fprintf(stdio.Out, "Cleared %d entries.\n", before)
		} else {
			_, _ = fmt.Fprintln(stdio.Out, "History not cleared.")
		}
		return nil
	}

	return c.print(stdio, s.calc.History().Entries(), 0)
}

func (c *HistoryCommand) print(stdio IO, records []history.Record, first int) error {
	if c.asJSON {
		enc := json.NewEncoder(stdio.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(stdio.Out, "No calculations yet.")
		return nil
	}
	w := tabwriter.NewWriter(stdio.Out, 0, 8, 2, ' ', 0)
	for i, rec := range records {
		_, _ = fmt.Fprintf(w, "%d\t%s = %s\t%s\n", first+i, rec.Expression, rec.Result, rec.Timestamp)
	}
	return w.Flush()
}
