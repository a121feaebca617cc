package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// FileHandler performs the document reads and writes for open tabs.
type FileHandler struct {
	perm fs.FileMode
}

func NewFileHandler() *FileHandler {
	return &FileHandler{perm: 0o644}
}

// Read returns the content of path. Content that is not valid UTF-8 is
// rejected so the editor never mangles binary files.
func (h *FileHandler) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", path)
	}
	return string(data), nil
}

// Write replaces the content of path verbatim, keeping the permissions of an
// existing file.
func (h *FileHandler) Write(path string, content string) error {
	perm := h.perm
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return os.WriteFile(path, []byte(content), perm)
}

// Exists reports whether path names a regular file.
func (h *FileHandler) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
