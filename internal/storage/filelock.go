package storage

import (
	"errors"
)

// ErrWouldBlock signals that a non-blocking lock attempt failed because
// another process already holds the profile.
var ErrWouldBlock = errors.New("profile is locked by another process")
