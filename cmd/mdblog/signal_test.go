package main

// Notes:
// - notifyContext: we test context creation, cancellation via stop() and
//   parent propagation. OS signal delivery is not tested: it is
//   non-deterministic and platform-specific.
// - runMain with a canceled context: the build must fail without output.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Context creation and cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		act      func(stop, cancelParent context.CancelFunc)
		wantDone bool
	}{
		{"live until stopped", func(_, _ context.CancelFunc) {}, false},
		{"stop cancels", func(stop, _ context.CancelFunc) { stop() }, true},
		{"parent cancel propagates", func(_, cancelParent context.CancelFunc) { cancelParent() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent, cancelParent := context.WithCancel(context.Background())
			defer cancelParent()
			ctx, stop := notifyContext(parent)
			defer stop()

			tt.act(stop, cancelParent)

			if done := ctx.Err() != nil; done != tt.wantDone {
				t.Errorf("ctx.Err() = %v, want done=%v", ctx.Err(), tt.wantDone)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_CanceledContext - Interrupted builds
// ---------------------------------------------------------------------------

func TestRunMain_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := writeBlog(t, dir)
	out := filepath.Join(dir, "public")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, stdout, _ := newTestEnv(nil)
	code := runMain(ctx, []string{"mdblog", "build", "--content", content, "--output", out}, env)

	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); !os.IsNotExist(err) {
		t.Errorf("index.html should not exist after a canceled build, stat err = %v", err)
	}
}
