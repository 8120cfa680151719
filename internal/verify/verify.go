// Package verify performs the engine's final, constant-time sanity
// checks on an assembled DecimalString before it is handed back to the
// caller. A failure here is treated as an internal bug, not a user
// error, but it is returned rather than panicking so callers can decide
// how to react.
package verify

import "fmt"

const wantPrefix = "3.14159"

// Reason names which structural check failed.
type Reason string

const (
	ReasonPrefix  Reason = "prefix"
	ReasonLength  Reason = "length"
	ReasonCharset Reason = "charset"
)

// Error reports a failed verification, naming the check that failed.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("verification failed: %s (%s)", e.Reason, e.Detail)
}

// Verify asserts that s is exactly "3." followed by digits decimal
// characters, beginning with as much of the known prefix "3.14159" as
// s has room for. It does not attempt repair.
func Verify(s string, digits int64) error {
	prefixLen := len(wantPrefix)
	if len(s) < prefixLen {
		prefixLen = len(s)
	}
	if s[:prefixLen] != wantPrefix[:prefixLen] {
		return &Error{Reason: ReasonPrefix, Detail: fmt.Sprintf("want prefix %q", wantPrefix[:prefixLen])}
	}

	wantLen := digits + 2
	if int64(len(s)) != wantLen {
		return &Error{Reason: ReasonLength, Detail: fmt.Sprintf("got length %d, want %d", len(s), wantLen)}
	}

	for i := 2; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return &Error{Reason: ReasonCharset, Detail: fmt.Sprintf("non-digit byte %q at index %d", s[i], i)}
		}
	}

	return nil
}
