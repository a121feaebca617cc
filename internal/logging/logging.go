// Package logging routes the standard logger to a file so log lines never
// land on the alternate screen while the editor is running.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/astromark/internal/constants"
)

var (
	mu   sync.Mutex
	file *os.File
)

// Configure points the standard logger at path. Empty values fall back to
// the default file name in the working directory. Directories are created
// automatically when missing.
func Configure(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if strings.TrimSpace(path) == "" {
		path = constants.LogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create log directory: %w", err)
	}

	f, err := tea.LogToFile(path, strings.ToLower(constants.AppName))
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}

	if file != nil {
		_ = file.Close()
	}
	file = f
	return nil
}

// SetOutput redirects logging to w. Tests use it to capture warnings.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// Close flushes and releases the log file, restoring stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	log.SetOutput(os.Stderr)
	return err
}

func Infof(format string, args ...any) {
	log.Printf("INFO "+format, args...)
}

func Warnf(format string, args ...any) {
	log.Printf("WARN "+format, args...)
}

func Errorf(format string, args ...any) {
	log.Printf("ERROR "+format, args...)
}
