package apperrors

import (
	"errors"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", NewInvalidRequest("bad"), 400},
		{"unprocessable", NewUnprocessable("bad shape"), 422},
		{"validation", NewValidation("invariant violated"), 422},
		{"not found", NewNotFound("missing"), 404},
		{"auth failure", NewAuthFailure("no key"), 401},
		{"not implemented", NewNotImplemented("unsupported"), 501},
		{"internal", NewInternal("boom", errors.New("cause")), 500},
		{"plain error", errors.New("plain"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusCode(tc.err); got != tc.want {
				t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrapPreservesType(t *testing.T) {
	original := NewNotFound("expression not found")
	wrapped := Wrap(original, "lookup expression")
	if StatusCode(wrapped) != 404 {
		t.Fatalf("Wrap downgraded a typed error's status code")
	}
	if !IsNotFound(wrapped) {
		t.Fatalf("Wrap lost the NotFound type")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "anything") != nil {
		t.Fatalf("Wrap(nil, ...) should return nil")
	}
}

func TestWrapPlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(errors.New("lower layer failure"), "context")
	if !IsInternal(wrapped) {
		t.Fatalf("wrapping a plain error should produce an Internal AppError")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewInternal("boom", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should see through AppError to its wrapped cause")
	}
}
