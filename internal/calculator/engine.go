// Package calculator implements the four-function calculator: an input state
// machine holding at most one pending binary operation, evaluated left to
// right without precedence.
package calculator

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/joeycumines/one-shot-calc/internal/history"
	"github.com/joeycumines/one-shot-calc/internal/numfmt"
	"golang.org/x/text/language"
)

// roundingScale sets the precision results are rounded to (8 decimal places).
const roundingScale = 1e8

// Recorder receives every completed computation.
type Recorder interface {
	Record(expression string, result float64) history.Record
}

// State is the engine's operand state.
type State struct {
	// Current is the operand being typed or the last result, as a numeral.
	Current string
	// Previous is the operand captured when Operator was chosen.
	Previous string
	// Operator is the pending operation, or OpNone.
	Operator Operator
	// AwaitingSecondOperand makes the next digit start a new operand.
	AwaitingSecondOperand bool
}

// Phase names the reachable combinations of pending operator and awaiting flag.
type Phase int

const (
	// PhaseIdle: no operator pending; typing extends the operand.
	PhaseIdle Phase = iota
	// PhaseOperatorChosen: operator pending, next digit starts the second operand.
	PhaseOperatorChosen
	// PhaseSecondOperand: operator pending, second operand being typed.
	PhaseSecondOperand
	// PhaseResult: a result is shown; a digit starts over, an operator chains from it.
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseOperatorChosen:
		return "operator-chosen"
	case PhaseSecondOperand:
		return "second-operand"
	case PhaseResult:
		return "result"
	}
	return "unknown"
}

// Snapshot is what the display shows.
type Snapshot struct {
	// Current is the formatted current operand.
	Current string
	// Previous is the formatted previous operand and operator symbol, or "".
	Previous string
}

// Engine is the calculator state machine. It is not safe for concurrent use.
type Engine struct {
	state     State
	recorder  Recorder
	formatter *numfmt.Formatter
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFormatter sets the locale formatter used by Display and Recall.
func WithFormatter(f *numfmt.Formatter) Option {
	return func(e *Engine) { e.formatter = f }
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine in the reset state. recorder may be nil.
func New(recorder Recorder, opts ...Option) *Engine {
	e := &Engine{recorder: recorder}
	for _, opt := range opts {
		opt(e)
	}
	if e.formatter == nil {
		e.formatter = numfmt.New(language.English)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.Reset()
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// Phase reports the state machine's current phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.state.Operator != OpNone && e.state.AwaitingSecondOperand:
		return PhaseOperatorChosen
	case e.state.Operator != OpNone:
		return PhaseSecondOperand
	case e.state.AwaitingSecondOperand:
		return PhaseResult
	}
	return PhaseIdle
}

// Reset returns to "0" with nothing pending.
func (e *Engine) Reset() {
	e.state = State{Current: "0"}
}

// Backspace removes the last typed character. The operand never drops below "0".
func (e *Engine) Backspace() {
	cur := e.state.Current
	switch {
	case cur == "0":
		return
	case len(cur) == 1, len(cur) == 2 && cur[0] == '-':
		e.state.Current = "0"
	default:
		cur = cur[:len(cur)-1]
		if cur == "-0" {
			cur = "0"
		}
		e.state.Current = cur
	}
}

// Input appends a digit ('0'-'9') or the decimal point ('.') to the current operand.
func (e *Engine) Input(token rune) error {
	if token != '.' && (token < '0' || token > '9') {
		return fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}

	if e.state.AwaitingSecondOperand {
		e.state.Current = ""
		e.state.AwaitingSecondOperand = false
	}

	cur := e.state.Current
	switch {
	case token == '.':
		if strings.Contains(cur, ".") {
			return nil
		}
		if cur == "" {
			cur = "0"
		}
		e.state.Current = cur + "."
	case cur == "0":
		e.state.Current = string(token)
	default:
		e.state.Current = cur + string(token)
	}
	return nil
}

// ChooseOperator sets op as the pending operation. If an operation is already
// pending and a second operand has been typed, it is computed first, so
// operations chain left to right. A compute error is returned after the
// operator has still been applied to the (reset) operand.
func (e *Engine) ChooseOperator(op Operator) error {
	if op == OpNone || !op.valid() {
		return ErrInvalidOperator
	}

	var err error
	if e.state.Operator != OpNone && !e.state.AwaitingSecondOperand {
		err = e.Compute()
	}

	e.state.Previous = e.state.Current
	e.state.Operator = op
	e.state.AwaitingSecondOperand = true
	return err
}

// Compute applies the pending operation. Without one, or when an operand is
// not a numeral, it does nothing. Division by zero and non-finite results
// reset the engine and return ErrDivisionByZero or ErrOverflow; no record is
// made for them.
func (e *Engine) Compute() error {
	op := e.state.Operator
	if op == OpNone {
		return nil
	}

	prev, ok1 := parseOperand(e.state.Previous)
	cur, ok2 := parseOperand(e.state.Current)
	if !ok1 || !ok2 {
		e.logger.Debug("ignoring compute with malformed operand",
			"previous", e.state.Previous, "current", e.state.Current)
		return nil
	}

	raw, err := op.apply(prev, cur)
	if err != nil {
		e.logger.Info("computation rejected", "operator", op.String(), "error", err)
		e.Reset()
		return err
	}

	result := round(raw)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		e.logger.Info("computation rejected", "operator", op.String(), "error", ErrOverflow)
		e.Reset()
		return ErrOverflow
	}

	expression := formatFloat(prev) + " " + op.Symbol() + " " + formatFloat(cur)
	if e.recorder != nil {
		e.recorder.Record(expression, result)
	}

	e.state = State{
		Current:               formatFloat(result),
		AwaitingSecondOperand: true,
	}
	return nil
}

// Recall makes a formatted history result the current operand, discarding
// any pending operation.
func (e *Engine) Recall(result string) error {
	plain, err := e.formatter.Unformat(result)
	if err != nil {
		return err
	}
	return e.RecallValue(plain)
}

// RecallValue is Recall for a plain numeral such as "1234.5".
func (e *Engine) RecallValue(value string) error {
	if _, ok := parseOperand(value); !ok {
		return fmt.Errorf("cannot recall %q: not a plain numeral", value)
	}
	e.state = State{
		Current:               value,
		AwaitingSecondOperand: true,
	}
	return nil
}

// Display returns the formatted display snapshot.
func (e *Engine) Display() Snapshot {
	s := Snapshot{Current: e.formatter.Operand(e.state.Current)}
	if e.state.Operator != OpNone {
		s.Previous = e.formatter.Operand(e.state.Previous) + " " + e.state.Operator.Symbol()
	}
	return s
}

// round applies round(x*1e8)/1e8. Values too large to scale are returned
// unchanged; they carry no fractional digits anyway.
func round(x float64) float64 {
	scaled := x * roundingScale
	if math.IsInf(scaled, 0) {
		return x
	}
	r := math.Round(scaled) / roundingScale
	if r == 0 {
		return 0 // drop the sign of negative zero
	}
	return r
}

func parseOperand(s string) (float64, bool) {
	if !numfmt.IsNumeral(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
