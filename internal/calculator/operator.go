package calculator

// Operator is a pending binary operation.
type Operator int

const (
	// OpNone means no operation is pending.
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

var operatorSymbols = [...]string{
	OpNone:     "",
	OpAdd:      "+",
	OpSubtract: "−",
	OpMultiply: "×",
	OpDivide:   "÷",
}

var operatorNames = [...]string{
	OpNone:     "none",
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
}

// Symbol returns the display glyph used in the display and history expressions.
func (o Operator) Symbol() string {
	if !o.valid() {
		return ""
	}
	return operatorSymbols[o]
}

// String returns the operator's name.
func (o Operator) String() string {
	if !o.valid() {
		return "unknown"
	}
	return operatorNames[o]
}

func (o Operator) valid() bool { return o >= OpNone && o <= OpDivide }

// ParseOperator accepts an operator name ("add"), ASCII key ("+", "-", "*",
// "/") or display glyph ("−", "×", "÷").
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "add", "+":
		return OpAdd, true
	case "subtract", "-", "−":
		return OpSubtract, true
	case "multiply", "*", "×", "x":
		return OpMultiply, true
	case "divide", "/", "÷":
		return OpDivide, true
	}
	return OpNone, false
}

// apply computes a <op> b. It does not round.
func (o Operator) apply(a, b float64) (float64, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	return 0, ErrInvalidOperator
}
