package calculator

import "fmt"

// ActionKind identifies a logical input action.
type ActionKind int

const (
	KindDigit ActionKind = iota + 1
	KindPoint
	KindOperator
	KindCompute
	KindClear
	KindBackspace
	KindClearHistory
	KindRecall
)

func (k ActionKind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindPoint:
		return "point"
	case KindOperator:
		return "operator"
	case KindCompute:
		return "compute"
	case KindClear:
		return "clear"
	case KindBackspace:
		return "backspace"
	case KindClearHistory:
		return "clear-history"
	case KindRecall:
		return "recall"
	}
	return "unknown"
}

// Action is one discrete input event, decoupled from whatever produced it.
type Action struct {
	Kind ActionKind
	// Digit is set for KindDigit.
	Digit rune
	// Operator is set for KindOperator.
	Operator Operator
	// Index is the history index for KindRecall.
	Index int
}

func (a Action) String() string {
	switch a.Kind {
	case KindDigit:
		return fmt.Sprintf("digit(%c)", a.Digit)
	case KindOperator:
		return fmt.Sprintf("operator(%s)", a.Operator)
	case KindRecall:
		return fmt.Sprintf("recall(%d)", a.Index)
	}
	return a.Kind.String()
}

// Digit returns the action for typing d ('0'-'9').
func Digit(d rune) Action { return Action{Kind: KindDigit, Digit: d} }

// Point returns the decimal-point action.
func Point() Action { return Action{Kind: KindPoint} }

// Op returns the action for choosing op.
func Op(op Operator) Action { return Action{Kind: KindOperator, Operator: op} }

// Compute returns the equals action.
func Compute() Action { return Action{Kind: KindCompute} }

// Clear returns the action that resets the engine.
func Clear() Action { return Action{Kind: KindClear} }

// Backspace returns the delete-last-character action.
func Backspace() Action { return Action{Kind: KindBackspace} }

// ClearHistory returns the action that asks to empty the history log.
func ClearHistory() Action { return Action{Kind: KindClearHistory} }

// Recall returns the action that loads history entry index into the display.
func Recall(index int) Action { return Action{Kind: KindRecall, Index: index} }

// keyActions maps keyboard key names to actions. Both DOM-style names
// ("Enter") and terminal names ("enter") are accepted.
var keyActions = map[string]Action{
	"+":         Op(OpAdd),
	"-":         Op(OpSubtract),
	"*":         Op(OpMultiply),
	"/":         Op(OpDivide),
	".":         Point(),
	",":         Point(),
	"=":         Compute(),
	"Enter":     Compute(),
	"enter":     Compute(),
	"Escape":    Clear(),
	"escape":    Clear(),
	"esc":       Clear(),
	"Backspace": Backspace(),
	"backspace": Backspace(),
}

// KeyAction maps a key name to its calculator action.
func KeyAction(key string) (Action, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Digit(rune(key[0])), true
	}
	a, ok := keyActions[key]
	return a, ok
}

// Apply performs a single engine action. History actions return
// ErrUnsupportedAction; alert conditions are returned as errors (see IsAlert).
func (e *Engine) Apply(a Action) error {
	switch a.Kind {
	case KindDigit:
		return e.Input(a.Digit)
	case KindPoint:
		return e.Input('.')
	case KindOperator:
		return e.ChooseOperator(a.Operator)
	case KindCompute:
		return e.Compute()
	case KindClear:
		e.Reset()
		return nil
	case KindBackspace:
		e.Backspace()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedAction, a)
}
