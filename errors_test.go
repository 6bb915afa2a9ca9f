package lattice

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsByCode(t *testing.T) {
	err := newError(CodeOutOfBounds, "cell (9, 0) outside chest 9x1")
	if !errors.Is(err, ErrOutOfBounds) {
		t.Error("error does not match its sentinel")
	}
	if errors.Is(err, ErrMissingArgument) {
		t.Error("error matches a sentinel of another code")
	}
	if errors.Is(err, errors.New("cell out of bounds")) {
		t.Error("error matches a plain error")
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("socket closed")
	err := fmt.Errorf("push: %w", wrapError(CodeHostUnavailable, cause, "surface %s", "alice"))

	if !errors.Is(err, ErrHostUnavailable) || !errors.Is(err, cause) {
		t.Errorf("chain lost: %v", err)
	}
	var le *Error
	if !errors.As(err, &le) || le.Code != CodeHostUnavailable {
		t.Fatalf("As failed: %v", err)
	}
	if got, want := le.Error(), "surface alice: socket closed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
