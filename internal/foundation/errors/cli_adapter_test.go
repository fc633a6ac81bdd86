package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config error", err: ConfigError("not a project").Build(), expected: 7},
		{name: "store error", err: StoreError("cannot open hash.db").Build(), expected: 9},
		{name: "template error", err: TemplateError("template not found").Build(), expected: 11},
		{name: "output error", err: OutputError("disk full").Build(), expected: 11},
		{name: "internal error", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified error", err: errors.New("unknown error"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "nil error", err: nil, contains: ""},
		{name: "config error shows message", err: ConfigError("/tmp/x is not an sr project").Build(), contains: "is not an sr project"},
		{
			name:     "page error names the page",
			err:      TemplateError("template not found").WithContext("page", "docs/intro").Build(),
			contains: "page docs/intro",
		},
		{name: "internal error hides details", err: InternalError("secret").Build(), contains: "use -v for details"},
		{name: "unclassified error", err: errors.New("plain"), contains: "Error: plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.FormatError(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want substring %q", got, tt.contains)
			}
		})
	}
}

func TestCLIErrorAdapter_VerboseShowsCause(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, slog.Default())
	err := WrapError(errors.New("permission denied"), CategoryOutput, "cannot write output").Build()

	got := adapter.FormatError(err)
	if !strings.Contains(got, "permission denied") {
		t.Errorf("expected verbose output to include cause, got %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(StoreError("cannot flush change tracker").WithContext("path", "hash.db").Build())

	if code != 9 {
		t.Errorf("exit code = %d, want 9", code)
	}
	if !strings.Contains(stderr.String(), "cannot flush change tracker") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.Contains(logs.String(), "path=hash.db") {
		t.Errorf("expected context in log output, got %q", logs.String())
	}
}
