// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			"operation only",
			&ActionableError{Operation: "load PDK module"},
			"failed to load PDK module",
		},
		{
			"with resource",
			&ActionableError{Operation: "load PDK module", Resource: "/opt/pdks/gf180"},
			"failed to load PDK module: /opt/pdks/gf180",
		},
		{
			"with cause",
			&ActionableError{Operation: "run installer", Cause: errors.New("exit 2")},
			"failed to run installer: exit 2",
		},
		{
			"full",
			&ActionableError{
				Operation: "load configuration",
				Resource:  "config.cue",
				Cause:     errors.New("bad syntax"),
			},
			"failed to load configuration: config.cue: bad syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithOperation(fmt.Errorf("mid: %w", cause), "do thing")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the root cause through Unwrap")
	}

	var ae *ActionableError
	if !errors.As(error(err), &ae) {
		t.Error("errors.As should find the ActionableError")
	}
}

func TestWrapWithOperation_Nil(t *testing.T) {
	if got := WrapWithOperation(nil, "op"); got != nil {
		t.Errorf("wrapping nil should stay nil, got %v", got)
	}
}

func TestFormat(t *testing.T) {
	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(fmt.Errorf("outer: %w", errors.New("inner"))).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "failed to load configuration: config.cue") {
		t.Errorf("plain format missing the message:\n%s", plain)
	}
	if !strings.Contains(plain, "• Check that the file contains valid CUE syntax") {
		t.Errorf("plain format missing suggestions:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("plain format should omit the chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("verbose format missing the chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "1. outer: inner") || !strings.Contains(verbose, "2. inner") {
		t.Errorf("verbose chain should number each level:\n%s", verbose)
	}
}

func TestBuilder(t *testing.T) {
	err := NewErrorContext().
		WithOperation("scan module").
		Build()

	if err.HasSuggestions() {
		t.Error("no suggestions were added")
	}
	if err.Operation != "scan module" {
		t.Errorf("Operation = %q", err.Operation)
	}

	asErr := NewErrorContext().WithOperation("x").BuildError()
	if asErr == nil {
		t.Fatal("BuildError should produce a non-nil error")
	}
}
