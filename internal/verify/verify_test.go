package verify

import (
	"errors"
	"testing"
)

func TestVerifyAccepts(t *testing.T) {
	if err := Verify("3.1415926535", 10); err != nil {
		t.Errorf("expected valid string to pass, got %v", err)
	}
}

func TestVerifyRejectsBadPrefix(t *testing.T) {
	err := Verify("3.2415926535", 10)
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != ReasonPrefix {
		t.Errorf("expected ReasonPrefix, got %v", err)
	}
}

func TestVerifyRejectsBadLength(t *testing.T) {
	err := Verify("3.14159265", 10)
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != ReasonLength {
		t.Errorf("expected ReasonLength, got %v", err)
	}
}

func TestVerifyRejectsBadCharset(t *testing.T) {
	err := Verify("3.14159x6535", 10)
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != ReasonCharset {
		t.Errorf("expected ReasonCharset, got %v", err)
	}
}

// TestVerifyAcceptsShortPrefixes covers D < len("3.14159"), where a
// textually-correct result is shorter than the known-prefix constant
// itself (spec.md's D=1 -> "3.1", D=2 -> "3.14" boundary cases).
func TestVerifyAcceptsShortPrefixes(t *testing.T) {
	cases := []struct {
		s      string
		digits int64
	}{
		{"3.1", 1},
		{"3.14", 2},
		{"3.141", 3},
		{"3.1415", 4},
	}
	for _, c := range cases {
		if err := Verify(c.s, c.digits); err != nil {
			t.Errorf("Verify(%q, %d): expected success, got %v", c.s, c.digits, err)
		}
	}
}

func TestVerifyRejectsBadShortPrefix(t *testing.T) {
	err := Verify("3.2", 1)
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != ReasonPrefix {
		t.Errorf("expected ReasonPrefix, got %v", err)
	}
}
