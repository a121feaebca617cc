package handler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "note.md")
	h := NewFileHandler()

	content := "# Title\n\n\tindented\n"
	if err := h.Write(path, content); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	got, err := h.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != content {
		t.Fatalf("expected %q, got %q", content, got)
	}
	if !h.Exists(path) {
		t.Fatalf("expected file to exist")
	}
}

func TestWriteKeepsPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "private.md")
	mustWriteFile(t, path, 0o600)

	if err := NewFileHandler().Write(path, "updated"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected permissions 0600, got %o", info.Mode().Perm())
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := NewFileHandler()

	if _, err := h.Read(filepath.Join(dir, "missing.md")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	binary := filepath.Join(dir, "blob.md")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := h.Read(binary); err == nil {
		t.Fatalf("expected error for invalid UTF-8")
	}

	if err := h.Write(dir, "x"); err == nil {
		t.Fatalf("expected error writing to a directory")
	}
}

func mustWriteFile(t *testing.T, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("# test\n"), perm); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
}
