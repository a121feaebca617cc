package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// Canonical returns an absolute, cleaned form of p so the same file opened
// through different relative paths compares equal.
func Canonical(p string) string {
	normalized := NormalizePath(p)
	if normalized == "" {
		return ""
	}

	abs, err := filepath.Abs(normalized)
	if err != nil {
		return normalized
	}
	return abs
}

// SamePath reports whether a and b name the same location once canonicalized.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return Canonical(a) == Canonical(b)
}
