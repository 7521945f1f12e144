package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput   = NewError("failed to read input")
	ErrExprCompile = NewError("expression compilation failed")
	ErrNilDelegate = NewError("nil parser delegate")
	ErrCacheState  = NewError("invalid cache state")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same predefined error. Matching is by
// base message, so copies carrying a cause or attributes still compare
// equal to their sentinel.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg != "" && e.msg == other.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError reports a fatal scanning failure at a specific location in the
// source. The scanner performs no local recovery: the first syntax error
// unwinds the entire parse.
type SyntaxError struct {
	// Message describes what the scanner required at the failure point.
	Message string
	// Span locates the failure. For errors attributed to a construct (an
	// unterminated comment, a disallowed silent comment) it covers the
	// construct; for a missing character it is empty at the failure offset.
	Span Span
	// Source is the full text being scanned, retained for context rendering.
	Source string
}

// Error implements the error interface, rendering the failing line with a
// caret marker when source context is available.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at ")
	buf.WriteString(e.Span.Start.String())
	buf.WriteString(": ")
	buf.WriteString(e.Message)

	if snippet := e.snippet(); snippet != "" {
		buf.WriteString("\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Message),
		slog.Int("line", e.Span.Start.Line),
		slog.Int("column", e.Span.Start.Column),
		slog.Int("offset", e.Span.Start.Offset),
	)
}

// snippet renders the offending source line with a column marker.
func (e *SyntaxError) snippet() string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")

	line, column := e.Span.Start.Line, e.Span.Start.Column
	if line < 1 || line > len(lines) {
		return ""
	}

	var src strings.Builder

	// Print the line with line number
	src.WriteString("  ")
	src.WriteString(strconv.Itoa(line))
	src.WriteString(" | ")
	src.WriteString(strings.TrimRight(lines[line-1], "\r"))
	src.WriteRune('\n')

	// Print marker pointing to the column
	// Calculate the width needed for line number display
	lineNumWidth := len(strconv.Itoa(line))
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", lineNumWidth+5)

	// Add spaces to reach the error column
	if column > 0 {
		padding += strings.Repeat(" ", column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}
