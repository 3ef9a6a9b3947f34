// SPDX-License-Identifier: EPL-2.0

package install

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestInstall_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	r := NewRunner("echo installing", time.Minute)
	result := r.Install(context.Background(), "gf180-pdk")

	if !result.Ok() {
		t.Fatalf("install failed: %+v", result)
	}
	if result.ReturnCode != 0 {
		t.Errorf("ReturnCode = %d, want 0", result.ReturnCode)
	}
	// The package identifier is appended as the final argument.
	if strings.TrimSpace(result.Output) != "installing gf180-pdk" {
		t.Errorf("Output = %q, want the echoed arguments", result.Output)
	}
}

func TestInstall_QuotedCommandWords(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	r := NewRunner(`echo "two words"`, time.Minute)
	result := r.Install(context.Background(), "pkg")
	if !result.Ok() {
		t.Fatalf("install failed: %+v", result)
	}
	if strings.TrimSpace(result.Output) != "two words pkg" {
		t.Errorf("Output = %q, want quoted word kept whole", result.Output)
	}
}

func TestInstall_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	r := NewRunner(`sh -c "exit 3"`, time.Minute)
	result := r.Install(context.Background(), "pkg")

	if result.Ok() {
		t.Fatal("non-zero exit should not be Ok")
	}
	if result.ReturnCode != 3 {
		t.Errorf("ReturnCode = %d, want 3", result.ReturnCode)
	}
	if result.TimedOut || result.Err != nil {
		t.Errorf("plain failure should not set TimedOut or Err: %+v", result)
	}
}

func TestInstall_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	// The appended package identifier lands in $0, not in the sleep.
	r := NewRunner(`sh -c "sleep 5"`, 50*time.Millisecond)
	result := r.Install(context.Background(), "pkg")

	if !result.TimedOut {
		t.Fatalf("expected timeout, got %+v", result)
	}
	if result.Output != "Installation timed out" {
		t.Errorf("Output = %q, want the timeout message", result.Output)
	}
	if result.ReturnCode != -1 {
		t.Errorf("ReturnCode = %d, want -1", result.ReturnCode)
	}
	if result.Ok() {
		t.Error("timed-out run should not be Ok")
	}
}

func TestInstall_SpawnFailure(t *testing.T) {
	r := NewRunner("definitely-not-a-real-binary-pdkserve", time.Minute)
	result := r.Install(context.Background(), "pkg")

	if result.Ok() {
		t.Fatal("spawn failure should not be Ok")
	}
	if result.Err == nil {
		t.Error("spawn failure should carry the error")
	}
	if result.ReturnCode != -1 {
		t.Errorf("ReturnCode = %d, want -1", result.ReturnCode)
	}
}

func TestInstall_MalformedCommand(t *testing.T) {
	r := NewRunner(`echo "unterminated`, time.Minute)
	result := r.Install(context.Background(), "pkg")

	if result.Ok() {
		t.Fatal("malformed command should not be Ok")
	}
	if result.Err == nil || result.ReturnCode != -1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner("", 0)
	if r.Command != DefaultCommand {
		t.Errorf("Command = %q, want %q", r.Command, DefaultCommand)
	}
	if r.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", r.Timeout, DefaultTimeout)
	}
}

func TestResult_Ok(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected bool
	}{
		{"clean", Result{ReturnCode: 0}, true},
		{"non-zero", Result{ReturnCode: 1}, false},
		{"timed out", Result{ReturnCode: -1, TimedOut: true}, false},
		{"spawn error", Result{ReturnCode: -1, Err: context.Canceled}, false},
	}
	for _, tt := range tests {
		if got := tt.result.Ok(); got != tt.expected {
			t.Errorf("%s: Ok() = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
