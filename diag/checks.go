package diag

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jonwraymond/clawstrap/secret"
)

// PathChecker reports the executable search path and whether the wrapped
// command resolves on it.
type PathChecker struct {
	// Command is the wrapped executable name or path.
	Command string
}

// Name returns the name of this checker.
func (c *PathChecker) Name() string { return "path" }

// Check resolves Command against PATH.
func (c *PathChecker) Check(_ context.Context) Result {
	details := map[string]any{
		"path": os.Getenv("PATH"),
	}

	if c.Command == "" {
		return Degraded("no wrapped command configured").WithDetails(details)
	}

	resolved, err := exec.LookPath(c.Command)
	if err != nil {
		return Unhealthy(fmt.Sprintf("%s not found on PATH", c.Command), err).WithDetails(details)
	}
	details["resolved"] = resolved
	return Healthy(fmt.Sprintf("%s resolves to %s", c.Command, resolved)).WithDetails(details)
}

// FileChecker reports presence and non-emptiness of each credential target.
//
// An absent file is Degraded, not Unhealthy: deployments legitimately omit
// secrets and let the wrapped application run unauthenticated or prompt.
type FileChecker struct {
	// Entries is the secret table whose targets are inspected.
	Entries []secret.Entry
}

// Name returns the name of this checker.
func (c *FileChecker) Name() string { return "credential-files" }

// Check stats every target file.
func (c *FileChecker) Check(_ context.Context) Result {
	details := make(map[string]any, len(c.Entries))
	missing := 0
	empty := 0

	for _, e := range c.Entries {
		info, err := os.Stat(e.Target)
		switch {
		case err != nil:
			details[e.ID] = "absent"
			missing++
		case info.Size() == 0:
			details[e.ID] = "empty"
			empty++
		default:
			details[e.ID] = fmt.Sprintf("present (%d bytes)", info.Size())
		}
	}

	switch {
	case len(c.Entries) == 0:
		return Degraded("no credential entries configured")
	case missing == 0 && empty == 0:
		return Healthy("all credential files present").WithDetails(details)
	case empty > 0:
		return Degraded(fmt.Sprintf("%d credential file(s) empty, %d absent", empty, missing)).WithDetails(details)
	default:
		return Degraded(fmt.Sprintf("%d credential file(s) absent", missing)).WithDetails(details)
	}
}

// ProbeChecker invokes the wrapped command's help output.
//
// This is an optional, best-effort hook coupled to the third-party CLI's
// surface; a probe failure only degrades the diagnosis and never blocks
// handoff.
type ProbeChecker struct {
	// Command is the wrapped executable name or path.
	Command string

	// Args is the probe argument list; nil means ["--help"].
	Args []string
}

// Name returns the name of this checker.
func (c *ProbeChecker) Name() string { return "cli-probe" }

// Check runs the probe under the runner's timeout.
func (c *ProbeChecker) Check(ctx context.Context) Result {
	if c.Command == "" {
		return Degraded("no wrapped command configured")
	}

	args := c.Args
	if args == nil {
		args = []string{"--help"}
	}

	out, err := exec.CommandContext(ctx, c.Command, args...).CombinedOutput()
	if err != nil {
		return Degraded(fmt.Sprintf("help probe failed: %v", err)).WithDetails(map[string]any{
			"output": firstLine(out),
		})
	}
	return Healthy("help probe succeeded").WithDetails(map[string]any{
		"output": firstLine(out),
	})
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if len(line) > 200 {
		line = line[:200]
	}
	return line
}

// ConfigDirChecker reports whether the credential directory exists and is
// writable enough to materialize into.
type ConfigDirChecker struct {
	// Dir is the credential base directory.
	Dir string
}

// Name returns the name of this checker.
func (c *ConfigDirChecker) Name() string { return "config-dir" }

// Check stats the directory and attempts a throwaway temp file.
func (c *ConfigDirChecker) Check(_ context.Context) Result {
	info, err := os.Stat(c.Dir)
	if err != nil {
		return Degraded(fmt.Sprintf("config dir %s absent", c.Dir))
	}
	if !info.IsDir() {
		return Unhealthy(fmt.Sprintf("%s is not a directory", c.Dir), nil)
	}

	probe, err := os.CreateTemp(c.Dir, ".clawstrap-probe-*")
	if err != nil {
		return Degraded(fmt.Sprintf("config dir %s not writable: %v", c.Dir, err))
	}
	probe.Close()
	os.Remove(probe.Name())

	return Healthy(fmt.Sprintf("config dir %s writable", filepath.Clean(c.Dir)))
}
