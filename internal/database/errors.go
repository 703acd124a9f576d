package database

import (
	"errors"
	"strings"
)

// ErrConflict is returned when a read-modify-write update loses the race
// against a concurrent writer of the same row. Callers are expected to
// reload, recompute and retry once before propagating the failure.
var ErrConflict = errors.New("row was modified concurrently")

// isUniqueViolation recognizes duplicate-key errors from both supported
// drivers. A violated (user, question) or (user, course) unique constraint
// means another writer created the row first, which is the same retryable
// situation as a lost version check.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
