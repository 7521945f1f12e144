package repl

import (
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// HistoryEntry is one submitted line together with the mode it was
// submitted in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History stores submitted lines in memory and mirrors them to a file so a
// session picks up where the last one left off. Entries remember their
// input mode, letting navigation restore it.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns a History persisted at path. Call Load to read any
// entries left by earlier sessions.
func NewHistory(path string) *History {
	return &History{path: path}
}

// tag returns the prefix recording an entry's mode in the history file.
func (md inputMode) tag() string {
	if md == modeCtrl {
		return "C:"
	}

	return "S:"
}

// decodeEntry parses one history file line. Untagged lines from older files
// count as scan input.
func decodeEntry(line string) HistoryEntry {
	if rest, ok := strings.CutPrefix(line, "C:"); ok {
		return HistoryEntry{Line: rest, Mode: modeCtrl}
	}

	if rest, ok := strings.CutPrefix(line, "S:"); ok {
		return HistoryEntry{Line: rest, Mode: modeScan}
	}

	return HistoryEntry{Line: line, Mode: modeScan}
}

// Load replaces the in-memory entries with the contents of the history
// file. A missing file leaves the history empty without error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	h.entries = h.entries[:0]

	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		h.entries = append(h.entries, decodeEntry(line))
	}

	return nil
}

// Write appends a scan-mode line to the history.
func (h *History) Write(line string) (int, error) {
	return h.WriteWithMode(line, modeScan)
}

// WriteWithMode appends a line to the history under the given mode. A line
// that already exists in the same mode moves to the end instead of being
// stored twice; consecutive repeats are dropped outright.
func (h *History) WriteWithMode(line string, mode inputMode) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return len(line), nil
	}

	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = append(slices.Delete(h.entries, i, i+1), entry)

		return h.rewrite()
	}

	h.entries = append(h.entries, entry)

	return h.appendLine(entry)
}

// GetLine returns the line text of the entry at index i, oldest first.
func (h *History) GetLine(i int) (string, error) {
	entry, err := h.GetEntry(i)

	return entry.Line, err
}

// GetEntry returns the entry at index i, oldest first.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// appendLine adds one encoded entry to the end of the history file.
func (h *History) appendLine(entry HistoryEntry) (int, error) {
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return f.WriteString(entry.Mode.tag() + entry.Line + "\n")
}

// rewrite replaces the history file with the in-memory entries. Callers
// must hold h.mu.
func (h *History) rewrite() (int, error) {
	var b strings.Builder

	for _, entry := range h.entries {
		b.WriteString(entry.Mode.tag())
		b.WriteString(entry.Line)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(h.path, []byte(b.String()), 0o600); err != nil {
		return 0, err
	}

	return b.Len(), nil
}
