package lang

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// EOF is the sentinel rune returned by [Cursor.Peek] and [Cursor.Read] when
// no input remains.
const EOF rune = -1

// Cursor scans an immutable in-memory source buffer one rune at a time,
// tracking byte offset plus 1-based line and column.
//
// The cursor only ever moves forward, except through [Cursor.Restore] and
// [Cursor.Rewind]: any lookahead is implemented by saving state, scanning
// ahead, and restoring on failure. Because the buffer never changes,
// restoring a saved [State] is always valid and O(1).
type Cursor struct {
	src  string
	pos  int
	line int
	col  int
}

// State is an opaque, copyable snapshot of a cursor's position. It remains
// valid for the lifetime of the cursor that produced it.
type State struct {
	pos  int
	line int
	col  int
}

// Position converts the snapshot into a [Position].
func (s State) Position() Position {
	return Position{Offset: s.pos, Line: s.line, Column: s.col}
}

// NewCursor returns a cursor positioned at the start of source.
func NewCursor(source string) *Cursor {
	return &Cursor{src: source, line: 1, col: 1}
}

// Source returns the complete buffer being scanned.
func (c *Cursor) Source() string { return c.src }

// Done reports whether the cursor has consumed all input.
func (c *Cursor) Done() bool { return c.pos >= len(c.src) }

// Offset returns the current 0-based byte offset.
func (c *Cursor) Offset() int { return c.pos }

// Position returns the current position.
func (c *Cursor) Position() Position {
	return Position{Offset: c.pos, Line: c.line, Column: c.col}
}

// Save snapshots the current position for a later [Cursor.Restore].
func (c *Cursor) Save() State {
	return State{pos: c.pos, line: c.line, col: c.col}
}

// Restore moves the cursor back (or forward) to a previously saved state.
func (c *Cursor) Restore(s State) {
	c.pos, c.line, c.col = s.pos, s.line, s.col
}

// Peek returns the rune at the current position without consuming it, or
// [EOF] if no input remains.
func (c *Cursor) Peek() rune {
	if c.pos >= len(c.src) {
		return EOF
	}

	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])

	return r
}

// PeekAt returns the rune n runes past the current position without
// consuming anything, or [EOF] if the buffer ends first. PeekAt(0) is
// equivalent to [Cursor.Peek].
func (c *Cursor) PeekAt(n int) rune {
	pos := c.pos
	for ; n > 0; n-- {
		if pos >= len(c.src) {
			return EOF
		}

		_, size := utf8.DecodeRuneInString(c.src[pos:])
		pos += size
	}

	if pos >= len(c.src) {
		return EOF
	}

	r, _ := utf8.DecodeRuneInString(c.src[pos:])

	return r
}

// Read consumes and returns the rune at the current position, or [EOF] if
// no input remains. Newlines advance the line counter and reset the column.
func (c *Cursor) Read() rune {
	if c.pos >= len(c.src) {
		return EOF
	}

	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size

	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}

	return r
}

// ScanRune consumes the next rune iff it equals r. The cursor is untouched
// on failure.
func (c *Cursor) ScanRune(r rune) bool {
	if c.Peek() != r {
		return false
	}

	c.Read()

	return true
}

// Scan consumes the given literal iff the input at the current position
// begins with it. The cursor is untouched on failure.
func (c *Cursor) Scan(literal string) bool {
	if !strings.HasPrefix(c.src[c.pos:], literal) {
		return false
	}

	for range utf8.RuneCountInString(literal) {
		c.Read()
	}

	return true
}

// ExpectRune consumes the next rune if it equals r, and fails with a
// positional [SyntaxError] otherwise.
func (c *Cursor) ExpectRune(r rune) error {
	if c.ScanRune(r) {
		return nil
	}

	return c.errorAt(c.Position(), "expected "+strconv.Quote(string(r)))
}

// Expect consumes the given literal, failing with a positional
// [SyntaxError] when the input does not begin with it.
func (c *Cursor) Expect(literal string) error {
	if c.Scan(literal) {
		return nil
	}

	return c.errorAt(c.Position(), "expected "+strconv.Quote(literal))
}

// Rewind steps the cursor back n bytes, recomputing line and column. It is
// the inverse of a forward scan over the same bytes and requires n to land
// on a rune boundary.
func (c *Cursor) Rewind(n int) {
	if n <= 0 {
		return
	}

	if n > c.pos {
		n = c.pos
	}

	target := c.pos - n

	for i := c.pos - 1; i >= target; i-- {
		if c.src[i] == '\n' {
			c.line--
		}
	}

	lineStart := strings.LastIndexByte(c.src[:target], '\n') + 1
	c.col = utf8.RuneCountInString(c.src[lineStart:target]) + 1
	c.pos = target
}

// SpanFrom returns the span from a saved state to the current position.
func (c *Cursor) SpanFrom(s State) Span {
	return Span{Start: s.Position(), End: c.Position()}
}

// Substring returns the text consumed between a saved state and the current
// position.
func (c *Cursor) Substring(s State) string {
	if s.pos > c.pos {
		return ""
	}

	return c.src[s.pos:c.pos]
}

// errorAt constructs a zero-width positional syntax error carrying the full
// source for context rendering.
func (c *Cursor) errorAt(p Position, msg string) *SyntaxError {
	return &SyntaxError{Message: msg, Span: SpanAt(p), Source: c.src}
}

// errorSpan constructs a syntax error covering the given span.
func (c *Cursor) errorSpan(s Span, msg string) *SyntaxError {
	return &SyntaxError{Message: msg, Span: s, Source: c.src}
}
