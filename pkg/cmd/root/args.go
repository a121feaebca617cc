package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveFileArgs turns positional file arguments into absolute paths.
// Relative paths are taken from base and a leading ~ is the home directory.
// Directories are rejected; missing files are allowed and open empty.
func ResolveFileArgs(base string, args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(args))

	for _, arg := range args {
		if strings.TrimSpace(arg) == "" {
			continue
		}

		resolved, err := resolveFileArg(base, arg)
		if err != nil {
			return nil, err
		}
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out, nil
}

func resolveFileArg(base, arg string) (string, error) {
	path := arg
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory for %q: %w", arg, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", fmt.Errorf("%q is a directory", arg)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("failed to inspect %q: %w", arg, err)
	}
	return path, nil
}
