package calculator

import "errors"

var (
	// ErrDivisionByZero is returned by Compute when the divisor is zero.
	// The engine has already reset when it is returned.
	ErrDivisionByZero = errors.New("cannot divide by zero")

	// ErrOverflow is returned by Compute when the result is not finite.
	// The engine has already reset when it is returned.
	ErrOverflow = errors.New("result is out of range")

	// ErrInvalidOperator is returned for OpNone or unknown operators.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidToken is returned by Input for anything but a digit or decimal point.
	ErrInvalidToken = errors.New("invalid input token")

	// ErrUnsupportedAction is returned by Engine.Apply for actions that need
	// the history log, such as ClearHistory and Recall.
	ErrUnsupportedAction = errors.New("action not handled by the engine")
)

// IsAlert reports whether err must be shown to the user as a blocking alert.
func IsAlert(err error) bool {
	return errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrOverflow)
}
