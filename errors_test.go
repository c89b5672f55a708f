package triage

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{name: "ErrNoInputs", err: ErrNoInputs, msg: "no input documents"},
		{name: "ErrBatchValidation", err: ErrBatchValidation, msg: "batch validation failed"},
		{name: "ErrStrictConsistency", err: ErrStrictConsistency, msg: "severity inconsistent with score"},
		{name: "ErrArtifactWrite", err: ErrArtifactWrite, msg: "artifact write failed"},
		{name: "ErrRowCountMismatch", err: ErrRowCountMismatch, msg: "artifact row count mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", tt.err.Error(), tt.msg)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := newError("Engine.Run", KindParse, ErrBatchValidation)
	got := err.Error()
	for _, want := range []string{"triage:", "Engine.Run", KindParse, "batch validation failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}

	withCtx := newError("Engine.Run", KindParse, ErrBatchValidation).
		withContext(map[string]any{"failed_documents": []string{"intake/a.md"}})
	if !strings.Contains(withCtx.Error(), "intake/a.md") {
		t.Errorf("Error() = %q, context not rendered", withCtx.Error())
	}

	bare := &Error{Op: "New", Kind: KindValidation}
	if bare.Error() == "" {
		t.Error("nil-Err Error() should still produce a message")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("wrapping: %w", ErrStrictConsistency)
	err := newError("Engine.Run", KindConsistency, inner)

	if !errors.Is(err, ErrStrictConsistency) {
		t.Error("errors.Is should find the sentinel through the chain")
	}
	if errors.Unwrap(err) != inner {
		t.Error("Unwrap should return the wrapped error")
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatal("errors.As should extract *Error")
	}
	if terr.Kind != KindConsistency {
		t.Errorf("Kind = %q, want %q", terr.Kind, KindConsistency)
	}
}

func TestErrorIsByKind(t *testing.T) {
	err := newError("Engine.Run", KindIO, ErrArtifactWrite)

	if !errors.Is(err, &Error{Kind: KindIO}) {
		t.Error("should match on kind alone")
	}
	if !errors.Is(err, &Error{Kind: KindIO, Op: "Engine.Run"}) {
		t.Error("should match on kind and op")
	}
	if errors.Is(err, &Error{Kind: KindIO, Op: "Engine.Other"}) {
		t.Error("should not match a different op")
	}
	if errors.Is(err, &Error{Kind: KindParse}) {
		t.Error("should not match a different kind")
	}
	if errors.Is(err, ErrBatchValidation) {
		t.Error("should not match an unrelated sentinel")
	}
}
