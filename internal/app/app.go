// Package app binds a calculator engine to its history log and turns input
// actions into render frames.
package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/joeycumines/one-shot-calc/internal/calculator"
	"github.com/joeycumines/one-shot-calc/internal/history"
	"github.com/joeycumines/one-shot-calc/internal/numfmt"
)

// Frame is everything a front end needs to render after an action.
type Frame struct {
	Display calculator.Snapshot
	// History is the log, most recent first.
	History []history.Record
	// Alert is a message that must be acknowledged before further input,
	// or "" when there is nothing to report.
	Alert string
}

// Calculator owns one engine and the history log it records into.
// It is not safe for concurrent use.
type Calculator struct {
	engine  *calculator.Engine
	history *history.Store
	logger  *slog.Logger
	// entries is the log as of the store's last change notification.
	entries []history.Record
}

// Option configures a Calculator.
type Option func(*options)

type options struct {
	formatter *numfmt.Formatter
	logger    *slog.Logger
}

// WithFormatter sets the locale used for the display and for recall.
func WithFormatter(f *numfmt.Formatter) Option {
	return func(o *options) { o.formatter = f }
}

// WithLogger sets the logger shared with the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a Calculator recording into store.
func New(store *history.Store, opts ...Option) *Calculator {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engineOpts := []calculator.Option{calculator.WithLogger(o.logger)}
	if o.formatter != nil {
		engineOpts = append(engineOpts, calculator.WithFormatter(o.formatter))
	}

	c := &Calculator{
		engine:  calculator.New(store, engineOpts...),
		history: store,
		logger:  o.logger,
		entries: store.Entries(),
	}
	store.Subscribe(c.historyChanged)
	return c
}

func (c *Calculator) historyChanged(entries []history.Record) {
	c.logger.Debug("history changed", "entries", len(entries))
	c.entries = entries
}

// Engine exposes the underlying state machine.
func (c *Calculator) Engine() *calculator.Engine { return c.engine }

// History exposes the history log.
func (c *Calculator) History() *history.Store { return c.history }

// Frame renders the current state without changing it.
func (c *Calculator) Frame() Frame {
	return Frame{
		Display: c.engine.Display(),
		History: c.entries,
	}
}

// Handle applies a and returns the frame to render. confirmer answers the
// clear-history prompt; nil declines.
func (c *Calculator) Handle(a calculator.Action, confirmer history.Confirmer) Frame {
	var err error
	switch a.Kind {
	case calculator.KindClearHistory:
		c.history.Clear(confirmer)
	case calculator.KindRecall:
		err = c.recall(a.Index)
	default:
		err = c.engine.Apply(a)
	}

	f := c.Frame()
	if err != nil {
		if calculator.IsAlert(err) {
			f.Alert = AlertText(err)
		} else {
			c.logger.Debug("action ignored", "action", a.String(), "error", err)
		}
	}
	return f
}

// HandleKey maps a key name to an action and handles it. Unmapped keys
// report false and leave the state alone.
func (c *Calculator) HandleKey(key string, confirmer history.Confirmer) (Frame, bool) {
	a, ok := calculator.KeyAction(key)
	if !ok {
		return c.Frame(), false
	}
	return c.Handle(a, confirmer), true
}

func (c *Calculator) recall(index int) error {
	rec, ok := c.history.Entry(index)
	if !ok {
		return errors.New("no history entry at that index")
	}
	if rec.Value != "" {
		return c.engine.RecallValue(rec.Value)
	}
	return c.engine.Recall(rec.Result)
}

// AlertText returns the user-facing text for an alert error.
func AlertText(err error) string {
	switch {
	case errors.Is(err, calculator.ErrDivisionByZero):
		return "Cannot divide by zero"
	case errors.Is(err, calculator.ErrOverflow):
		return "Result is out of range"
	case err == nil:
		return ""
	}
	return err.Error()
}
