package state

import (
	"errors"
	"fmt"

	"github.com/Paintersrp/astromark/internal/config"
	"github.com/Paintersrp/astromark/internal/handler"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/opener"
	"github.com/Paintersrp/astromark/internal/recent"
)

// State bundles the process-wide collaborators the session is built from.
type State struct {
	Config  *config.Config
	Recent  *recent.Store
	Handler *handler.FileHandler
	Opener  *opener.Opener
	Watcher *DocumentWatcher
	Dir     string
}

type Options struct {
	// Dir overrides the per-user configuration directory.
	Dir string
	// ConfigPath overrides the configuration script location.
	ConfigPath string
}

// NewState resolves the configuration directory, evaluates the configuration
// script and loads the recent-files list. Only a missing configuration
// directory is an error; everything else degrades to defaults.
func NewState(opts Options) (*State, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := config.GetOrCreateDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.GetConfigPath(dir)
	}
	if err := config.EnsureConfigExists(cfgPath); err != nil {
		return nil, fmt.Errorf("failed to prepare config: %w", err)
	}

	cfg := config.Load(cfgPath, dir)
	rec := recent.Load(config.GetRecentPath(dir), cfg.MaxRecents)

	watcher, err := NewDocumentWatcher()
	if err != nil {
		logging.Warnf("file watching disabled: %v", err)
		watcher = nil
	}

	return &State{
		Config:  cfg,
		Recent:  rec,
		Handler: handler.NewFileHandler(),
		Opener:  opener.New(),
		Watcher: watcher,
		Dir:     dir,
	}, nil
}

// Close persists the recent-files list and releases the watcher and the
// script engine.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Recent != nil {
		if err := s.Recent.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Config != nil {
		s.Config.Close()
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
