package voxcore

import (
	"errors"
	"strings"
	"testing"
)

func TestTaskErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	te := TaskError{TaskID: "t1", Err: inner}

	if !errors.Is(te, inner) {
		t.Fatalf("expected errors.Is to see through TaskError.Unwrap")
	}
}

func TestTaskErrorsMessageVariesByCount(t *testing.T) {
	var none TaskErrors
	if none.HasErrors() {
		t.Fatalf("empty TaskErrors should report HasErrors() == false")
	}

	one := TaskErrors{{TaskID: "a", Err: errors.New("x")}}
	if !one.HasErrors() {
		t.Fatalf("non-empty TaskErrors should report HasErrors() == true")
	}
	if one.Error() != one[0].Error() {
		t.Fatalf("a single TaskErrors entry should report that entry's own message")
	}

	many := TaskErrors{
		{TaskID: "a", Err: errors.New("x")},
		{TaskID: "b", Err: errors.New("y")},
	}
	if many.Error() == "" {
		t.Fatalf("expected a non-empty summary message for multiple task errors")
	}
}

func TestInvariantViolationMessageIncludesIndexOnlyWhenSet(t *testing.T) {
	withoutIndex := InvariantViolation{Message: "bad state"}
	withIndex := InvariantViolation{Message: "bad state", Index: 7}

	if withoutIndex.Error() == withIndex.Error() {
		t.Fatalf("expected the indexed and non-indexed messages to differ")
	}
}

func TestNotFoundErrorIncludesKindAndID(t *testing.T) {
	e := NotFoundError{Kind: "voxel object", ID: "abc"}
	msg := e.Error()
	if msg == "" {
		t.Fatalf("expected a non-empty error message")
	}
	if !strings.Contains(msg, "voxel object") || !strings.Contains(msg, "abc") {
		t.Fatalf("expected the message to include the kind and id, got %q", msg)
	}
}
