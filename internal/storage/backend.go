package storage

// Backend defines the contract for durable string-blob slots.
//
// A backend is owned by one profile. Slots are addressed by name and hold an
// opaque serialized value, written and read whole.
type Backend interface {
	// Get retrieves the value stored in the named slot.
	// It MUST return ("", false, nil) if the slot has never been written.
	Get(slot string) (string, bool, error)

	// Set atomically replaces the value stored in the named slot.
	Set(slot, value string) error

	// Close performs any necessary cleanup of backend resources, such as releasing file locks.
	Close() error
}
