// Package brief discovers and loads the campaign brief, an optional
// markdown file that gives the advisor campaign context.
package brief

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultBrief = "campaign.md"

// Discover finds the campaign brief path.
// Priority: FLOWDECK_BRIEF env var > campaign.md in CWD > walk up parents.
func Discover() (string, error) {
	if env := os.Getenv("FLOWDECK_BRIEF"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env, nil
		}
		return "", fmt.Errorf("FLOWDECK_BRIEF=%q: %w", env, os.ErrNotExist)
	}

	// Check CWD first.
	if _, err := os.Stat(defaultBrief); err == nil {
		abs, err := filepath.Abs(defaultBrief)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path for %s: %w", defaultBrief, err)
		}
		return abs, nil
	}

	// Walk up parent directories.
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, defaultBrief)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no campaign brief found (looked for %s)", defaultBrief)
}

// Load reads the brief and returns its trimmed text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read brief %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
