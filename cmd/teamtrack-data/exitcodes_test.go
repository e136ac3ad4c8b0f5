package main

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != exitOK {
		t.Fatalf("nil error: got %d", got)
	}
	if got := exitCode(errors.New("plain")); got != 1 {
		t.Fatalf("uncoded error: got %d", got)
	}
	if got := exitCode(withCode(exitValidation, errors.New("bad row"))); got != exitValidation {
		t.Fatalf("coded error: got %d", got)
	}
	// the code survives wrapping
	wrapped := fmt.Errorf("users.csv: %w", withCode(exitDB, errors.New("conn refused")))
	if got := exitCode(wrapped); got != exitDB {
		t.Fatalf("wrapped coded error: got %d", got)
	}
}

func TestWithCodeNil(t *testing.T) {
	if err := withCode(exitDB, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
