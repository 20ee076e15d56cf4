package tokenprovider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func writeHelper(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("helper scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "helper.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write helper: %v", err)
	}
	return path
}

func TestNewCommandProvider_Empty(t *testing.T) {
	if _, err := NewCommandProvider("   ", time.Second); err == nil {
		t.Error("Expected error for empty command")
	}
}

func TestCommandProvider_Acquire(t *testing.T) {
	helper := writeHelper(t, `echo ""
echo "  token-for-$1  "
echo "ignored"
`)

	p, err := NewCommandProvider(helper, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	tok, err := p.Acquire(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if tok != "token-for-hello" {
		t.Errorf("Acquire() = %q, want token-for-hello", tok)
	}
}

func TestCommandProvider_NoOutput(t *testing.T) {
	helper := writeHelper(t, "exit 0\n")

	p, _ := NewCommandProvider(helper, 5*time.Second)
	if _, err := p.Acquire(context.Background(), "x"); !errors.Is(err, ErrNoToken) {
		t.Errorf("Acquire() error = %v, want ErrNoToken", err)
	}
}

func TestCommandProvider_Failure(t *testing.T) {
	helper := writeHelper(t, "echo 'browser crashed' >&2\nexit 3\n")

	p, _ := NewCommandProvider(helper, 5*time.Second)
	_, err := p.Acquire(context.Background(), "x")
	if err == nil {
		t.Fatal("Expected error from failing helper")
	}
	var exitErr interface{ ExitCode() int }
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("Acquire() error = %v, want exit status 3", err)
	}
}

func TestCommandProvider_Timeout(t *testing.T) {
	helper := writeHelper(t, "exec sleep 5\n")

	p, _ := NewCommandProvider(helper, 100*time.Millisecond)
	start := time.Now()
	if _, err := p.Acquire(context.Background(), "x"); err == nil {
		t.Fatal("Expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Acquire took %v, want it bounded by the timeout", elapsed)
	}
}
