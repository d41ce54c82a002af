package history

// ClearPrompt is the question put to a Confirmer before clearing the log.
const ClearPrompt = "Clear the entire calculation history?"

// Confirmer supplies the yes/no answer required before the log is cleared.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	// Confirmed always answers yes, for callers that already asked.
	Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })
	// Declined always answers no.
	Declined Confirmer = ConfirmFunc(func(string) bool { return false })
)
