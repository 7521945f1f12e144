package lang

import (
	"fmt"
	"log/slog"
)

// Position identifies a location in a source buffer. Offset is a 0-based
// byte index; Line and Column are 1-based, with columns counted in runes
// from the most recent line break.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position in diagnostic form.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Span is a half-open range [Start, End) over a source buffer. A zero-width
// span pins a single point, as in "expected" diagnostics.
type Span struct {
	Start Position
	End   Position
}

// SpanAt returns a zero-width span at the given position.
func SpanAt(p Position) Span {
	return Span{Start: p, End: p}
}

// Len returns the byte length of the spanned text.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsZero reports whether the span is the zero value, distinguishing "no
// location" from a real zero-width span at the buffer start.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Text returns the spanned slice of source. The source must be the same
// buffer the span was produced from.
func (s Span) Text(source string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(source) || s.Start.Offset > s.End.Offset {
		return ""
	}

	return source[s.Start.Offset:s.End.Offset]
}

// String renders the span in diagnostic form.
func (s Span) String() string {
	if s.Len() == 0 {
		return s.Start.String()
	}

	return fmt.Sprintf("%d:%d-%d:%d",
		s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// LogValue implements slog.LogValuer so spans attach cleanly to log records.
func (s Span) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", s.Start.Line),
		slog.Int("column", s.Start.Column),
		slog.Int("offset", s.Start.Offset),
		slog.Int("length", s.Len()),
	)
}
