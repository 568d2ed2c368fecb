package hook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrHookExists is returned by Install when a different commit-msg hook is
// already installed and overwriting was not requested.
var ErrHookExists = errors.New("commit-msg hook already exists")

// InstallOptions configures Install.
type InstallOptions struct {
	// HooksDir receives the hook. Empty means ask git.
	HooksDir string
	// Binary is the command the hook runs.
	Binary string
	Force  bool
}

// Script returns the commit-msg hook that runs binary on the message file.
func Script(binary string) string {
	return fmt.Sprintf("#!/bin/sh\n# Installed by spellhook.\nexec %s \"$1\"\n", shellQuote(binary))
}

// Install writes the commit-msg hook and returns its path. Reinstalling an
// identical hook is a no-op.
func Install(ctx context.Context, opts InstallOptions) (string, error) {
	dir := opts.HooksDir
	if dir == "" {
		var err error
		dir, err = GitHooksDir(ctx)
		if err != nil {
			return "", err
		}
	}

	binary := opts.Binary
	if binary == "" {
		binary = "spellhook"
	}

	path := filepath.Join(dir, "commit-msg")
	script := []byte(Script(binary))

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, script) {
			return path, nil
		}
		if !opts.Force {
			return "", fmt.Errorf("%w: %s (use --force to replace it)", ErrHookExists, path)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("install: read %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("install: create %s: %w", dir, err)
	}

	if err := os.WriteFile(path, script, 0o755); err != nil {
		return "", fmt.Errorf("install: write %s: %w", path, err)
	}

	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("install: chmod %s: %w", path, err)
	}

	return path, nil
}

// GitHooksDir asks git for the hooks directory of the current repository.
func GitHooksDir(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-path", "hooks")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("install: locate git hooks directory: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(string(out)), nil
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./+", r))
	}) < 0 {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
