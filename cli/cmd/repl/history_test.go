package repl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	if _, err := h.WriteWithMode("$a: 1;", modeScan); err != nil {
		t.Fatalf("write scan entry: %v", err)
	}

	if _, err := h.WriteWithMode("plain", modeCtrl); err != nil {
		t.Fatalf("write ctrl entry: %v", err)
	}

	// Load into a fresh instance to verify persistence.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Fatalf("entries = %d, want 2", reloaded.Len())
	}

	first, err := reloaded.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry(0): %v", err)
	}

	if first.Line != "$a: 1;" || first.Mode != modeScan {
		t.Errorf("entry 0 = %+v, want scan-mode \"$a: 1;\"", first)
	}

	second, err := reloaded.GetEntry(1)
	if err != nil {
		t.Fatalf("GetEntry(1): %v", err)
	}

	if second.Line != "plain" || second.Mode != modeCtrl {
		t.Errorf("entry 1 = %+v, want ctrl-mode \"plain\"", second)
	}
}

func TestHistoryFilePrefixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	_, _ = h.WriteWithMode("nav {}", modeScan)
	_, _ = h.WriteWithMode("list", modeCtrl)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("file lines = %d, want 2", len(lines))
	}

	if lines[0] != "S:nav {}" {
		t.Errorf("line 0 = %q, want %q", lines[0], "S:nav {}")
	}

	if lines[1] != "C:list" {
		t.Errorf("line 1 = %q, want %q", lines[1], "C:list")
	}
}

func TestHistoryLegacyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	err := os.WriteFile(path, []byte("no prefix line\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	entry, err := h.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry(0): %v", err)
	}

	if entry.Mode != modeScan {
		t.Errorf("legacy entries should default to scan mode, got %v", entry.Mode)
	}
}

func TestHistoryDuplicateMovesToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	_, _ = h.WriteWithMode("first", modeScan)
	_, _ = h.WriteWithMode("second", modeScan)
	_, _ = h.WriteWithMode("first", modeScan)

	if h.Len() != 2 {
		t.Fatalf("entries = %d, want 2 (duplicate removed)", h.Len())
	}

	last, err := h.GetLine(h.Len() - 1)
	if err != nil {
		t.Fatal(err)
	}

	if last != "first" {
		t.Errorf("last entry = %q, want %q", last, "first")
	}

	// File must reflect the reordered entries.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if reloaded.Len() != 2 {
		t.Errorf("reloaded entries = %d, want 2", reloaded.Len())
	}
}

func TestHistoryConsecutiveDuplicateSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	_, _ = h.WriteWithMode("same", modeScan)
	_, _ = h.WriteWithMode("same", modeScan)

	if h.Len() != 1 {
		t.Errorf("entries = %d, want 1", h.Len())
	}
}

func TestHistorySameLineDifferentModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	_, _ = h.WriteWithMode("list", modeScan)
	_, _ = h.WriteWithMode("list", modeCtrl)

	if h.Len() != 2 {
		t.Errorf("entries = %d, want 2 (modes are distinct)", h.Len())
	}
}

func TestHistoryOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.GetEntry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry on empty history = %v, want ErrOutOfBounds", err)
	}

	if _, err := h.GetLine(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(-1) = %v, want ErrOutOfBounds", err)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := h.Load(); err != nil {
		t.Errorf("missing history file should not error: %v", err)
	}
}
