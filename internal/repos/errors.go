package repos

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
	// ErrConflict is returned when a write transaction loses the race for
	// the database lock. The caller may retry the whole transaction.
	ErrConflict = errors.New("transaction conflict")
)

// isLocked matches the SQLITE_BUSY / SQLITE_LOCKED family of driver errors.
func isLocked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// asConflict converts lock contention into ErrConflict and passes every
// other error through unchanged.
func asConflict(err error) error {
	if isLocked(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
