// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bunkai/internal/cli/config"
)

// CommandResult holds the captured output of one command execution.
type CommandResult struct {
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// Output returns the stdout output as a string.
func (r *CommandResult) Output() string {
	return r.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (r *CommandResult) ErrorOutput() string {
	return r.ErrOut.String()
}

// Lines returns stdout split into lines, without the final newline.
func (r *CommandResult) Lines() []string {
	s := strings.TrimSuffix(r.Output(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// RunCommand executes cmd with args, feeding stdin and capturing both output
// streams. The package-level configuration is reset before and after.
func RunCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (*CommandResult, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	res := &CommandResult{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(res.Out)
	cmd.SetErr(res.ErrOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return res, err
}

// WriteConfig writes a bunkai.yaml with content into a temp dir and returns its path.
func WriteConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bunkai.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
