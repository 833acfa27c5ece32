package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindPermission, "permission denied"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindConfig, "configuration error"},
		{KindGit, "git error"},
		{KindAI, "text generation error"},
		{KindTerminal, "terminal error"},
		{KindBusy, "busy"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE_ContextOnlyBecomesError(t *testing.T) {
	err := E(Op("x.Y"), KindInvalid, "bad input")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if e.Context != "" {
		t.Errorf("Context = %q, want empty", e.Context)
	}
	if e.Err.Error() != "bad input" {
		t.Errorf("Err = %q, want %q", e.Err, "bad input")
	}
	if err.Error() != "x.Y: bad input" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsAndGetKind(t *testing.T) {
	err := TerminalBusy()
	if !Is(err, KindBusy) {
		t.Error("TerminalBusy() should be KindBusy")
	}
	if Is(err, KindIO) {
		t.Error("TerminalBusy() should not be KindIO")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if GetKind(wrapped) != KindBusy {
		t.Errorf("GetKind(wrapped) = %v, want busy", GetKind(wrapped))
	}

	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain errors should be KindUnknown")
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      error
		kind     Kind
		contains string
	}{
		{"raw mode", RawModeFailed(cause), KindTerminal, "raw mode"},
		{"render", RenderFailed(cause), KindIO, "frame"},
		{"config load", ConfigLoadFailed("/tmp/c.json", cause), KindConfig, "/tmp/c.json"},
		{"config save", ConfigSaveFailed("/tmp/c.json", cause), KindConfig, "save"},
		{"config invalid", ConfigInvalid("menu height must be positive"), KindInvalid, "menu height"},
		{"not repo", GitNotRepo("/nope"), KindInvalid, "/nope"},
		{"git command", GitCommandFailed("status", cause), KindGit, "git status"},
		{"branch", BranchCreateFailed("feat/x", cause), KindGit, "feat/x"},
		{"generation", GenerationFailed("commit message", cause), KindAI, "commit message"},
		{"cli", CLINotFound("gh"), KindNotFound, "'gh'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if GetKind(tt.err) != tt.kind {
				t.Errorf("kind = %v, want %v", GetKind(tt.err), tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("%q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestConstructorsUnwrapCause(t *testing.T) {
	cause := errors.New("boom")
	if !errors.Is(RawModeFailed(cause), cause) {
		t.Error("RawModeFailed should wrap its cause")
	}
}
