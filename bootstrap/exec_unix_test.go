//go:build unix

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonwraymond/clawstrap/config"
	"github.com/jonwraymond/clawstrap/observe"
)

// maybeRunHandoffChild runs inside a re-executed copy of the test binary.
// It builds an App without a stubbed exec function and hands off to the
// script named by the environment, so on success it never returns: the
// process image is the script's, and its stdout and exit code are what the
// parent observes.
func maybeRunHandoffChild() {
	script := os.Getenv("CLAWSTRAP_HANDOFF_SCRIPT")
	if script == "" {
		return
	}

	dir, err := os.MkdirTemp("", "clawstrap-handoff")
	if err != nil {
		fmt.Fprintf(os.Stderr, "handoff child: %v\n", err)
		os.Exit(3)
	}
	cfg := &config.Config{ConfigDir: dir, Entries: config.DefaultEntries(dir)}
	app := New(cfg, observe.NewNoopLogger())

	err = app.Run(context.Background(), []string{script})
	fmt.Fprintf(os.Stderr, "handoff child: Run returned: %v\n", err)
	os.Exit(3)
}

func reexec(t *testing.T, test, script string) ([]byte, error) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+test+"$")
	cmd.Env = append(os.Environ(), "CLAWSTRAP_HANDOFF_SCRIPT="+script)
	return cmd.Output()
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "wrapped.sh")
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return script
}

func TestRun_ExecPreservesStdoutAndZeroExit(t *testing.T) {
	maybeRunHandoffChild()

	script := writeScript(t, "#!/bin/sh\necho handoff-ok\n")
	out, err := reexec(t, "TestRun_ExecPreservesStdoutAndZeroExit", script)
	if err != nil {
		t.Fatalf("wrapped command should exit zero, got %v (stdout %q)", err, out)
	}
	if string(out) != "handoff-ok\n" {
		t.Fatalf("wrapped stdout = %q, want %q", out, "handoff-ok\n")
	}
}

func TestRun_ExecPropagatesExitCode(t *testing.T) {
	maybeRunHandoffChild()

	script := writeScript(t, "#!/bin/sh\necho handoff-ok\nexit 7\n")
	out, err := reexec(t, "TestRun_ExecPropagatesExitCode", script)
	if string(out) != "handoff-ok\n" {
		t.Fatalf("wrapped stdout = %q, want %q (err = %v)", out, "handoff-ok\n", err)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected the script's nonzero exit to surface, got %v", err)
	}
	if code := exitErr.ExitCode(); code != 7 {
		t.Fatalf("exit code = %d, want 7", code)
	}
}
