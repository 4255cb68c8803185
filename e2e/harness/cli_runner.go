package harness

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/artpar/rickdex/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Lines returns the non-empty stdout lines.
func (r *CLIResult) Lines() []string {
	var out []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// CLIRunner executes CLI commands against the harness catalog and data dir.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{
		"--base-url", r.harness.BaseURL(),
		"--data-dir", r.harness.DataDir(),
	}, args...))

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// Search is a convenience method for the search command.
func (r *CLIRunner) Search(name string, opts ...string) (*CLIResult, error) {
	return r.Run(append([]string{"search", name}, opts...)...)
}

// Favorites runs a favorites subcommand.
func (r *CLIRunner) Favorites(args ...string) (*CLIResult, error) {
	return r.Run(append([]string{"favorites"}, args...)...)
}

// FavoriteIDs returns the persisted ids as printed by `favorites ids`.
func (r *CLIRunner) FavoriteIDs() ([]string, error) {
	result, err := r.Favorites("ids")
	if err != nil {
		return nil, err
	}
	return result.Lines(), nil
}
