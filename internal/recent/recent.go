// Package recent keeps the bounded most-recently-used list of opened files.
package recent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/pathutil"
)

// DefaultMax is the list capacity used when the configuration leaves it unset.
const DefaultMax = 10

type fileFormat struct {
	Paths []string `yaml:"paths"`
}

// Store is an ordered, duplicate-free list of paths with the most recently
// used entry last.
type Store struct {
	path  string
	max   int
	paths []string
}

// New returns an empty store persisted at path.
func New(path string, max int) *Store {
	if max <= 0 {
		max = DefaultMax
	}
	return &Store{path: path, max: max}
}

// Load reads the store from path. A missing, unreadable or corrupt file
// yields an empty list; only the corrupt case is logged.
func Load(path string, max int) *Store {
	s := New(path, max)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warnf("unable to read recent files %s: %v", path, err)
		}
		return s
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		logging.Warnf("discarding corrupt recent files %s: %v", path, err)
		return s
	}

	for _, p := range f.Paths {
		if p == "" {
			continue
		}
		s.push(p)
	}
	return s
}

// Add records p as the most recently used path.
func (s *Store) Add(p string) {
	p = pathutil.NormalizePath(p)
	if p == "" {
		return
	}
	s.push(p)
}

func (s *Store) push(p string) {
	out := s.paths[:0:0]
	for _, existing := range s.paths {
		if existing != p {
			out = append(out, existing)
		}
	}
	out = append(out, p)
	if len(out) > s.max {
		out = out[len(out)-s.max:]
	}
	s.paths = out
}

// Paths returns a copy of the list, oldest first.
func (s *Store) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// MostRecentFirst returns a copy of the list with the newest entry first.
func (s *Store) MostRecentFirst() []string {
	out := make([]string, len(s.paths))
	for i, p := range s.paths {
		out[len(s.paths)-1-i] = p
	}
	return out
}

func (s *Store) Len() int {
	return len(s.paths)
}

func (s *Store) Max() int {
	return s.max
}

// Save writes the list to disk, replacing the previous file atomically.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(fileFormat{Paths: s.Paths()})
	if err != nil {
		return fmt.Errorf("failed to encode recent files: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create recent files directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write recent files: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace recent files: %w", err)
	}
	return nil
}
