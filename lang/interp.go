package lang

import "strings"

// Segment is one piece of an [Interpolation]: either literal text or an
// embedded expression.
type Segment interface {
	segment()
	String() string
}

// LiteralSegment is a run of literal text between expressions.
type LiteralSegment struct {
	Text string
}

func (LiteralSegment) segment() {}

// String returns the literal text.
func (s LiteralSegment) String() string { return s.Text }

// ExpressionSegment is one "#{}" expression embedded in surrounding text.
type ExpressionSegment struct {
	// Raw is the full delimited text including the "#{" and "}" markers,
	// exactly as written in the source.
	Raw string
	// Expr is the parsed expression, a [*RawExpression] unless the parser
	// was configured with a custom expression parser.
	Expr Expression
}

func (ExpressionSegment) segment() {}

// String returns the raw delimited text.
func (s ExpressionSegment) String() string { return s.Raw }

// Interpolation is text interleaved with embedded expressions, preserving
// segment order. Adjacent literal text is always coalesced into a single
// segment, so no two consecutive segments are both literals.
type Interpolation struct {
	Segments []Segment

	span Span
}

// Span implements [Node].
func (i Interpolation) Span() Span { return i.span }

// String reconstructs the interpolation's source text, rendering
// expression segments with their "#{}" markers.
func (i Interpolation) String() string {
	var sb strings.Builder
	for _, seg := range i.Segments {
		sb.WriteString(seg.String())
	}

	return sb.String()
}

// IsPlain reports whether the interpolation contains no expressions.
func (i Interpolation) IsPlain() bool {
	for _, seg := range i.Segments {
		if _, ok := seg.(ExpressionSegment); ok {
			return false
		}
	}

	return true
}

// AsPlain returns the literal text when the interpolation is plain, and
// false otherwise.
func (i Interpolation) AsPlain() (string, bool) {
	if !i.IsPlain() {
		return "", false
	}

	return i.String(), true
}

// Expressions returns the embedded expressions in source order.
func (i Interpolation) Expressions() []Expression {
	var exprs []Expression
	for _, seg := range i.Segments {
		if es, ok := seg.(ExpressionSegment); ok {
			exprs = append(exprs, es.Expr)
		}
	}

	return exprs
}

// InterpolationBuffer accumulates literal text and expressions while
// scanning a region that permits "#{}". Text written between expressions
// coalesces into single literal segments.
type InterpolationBuffer struct {
	text     strings.Builder
	segments []Segment
}

// WriteString appends literal text.
func (b *InterpolationBuffer) WriteString(s string) {
	b.text.WriteString(s)
}

// WriteRune appends a single literal character.
func (b *InterpolationBuffer) WriteRune(r rune) {
	b.text.WriteRune(r)
}

// AddExpression appends an embedded expression, closing the pending
// literal segment first. raw is the full "#{...}" source text.
func (b *InterpolationBuffer) AddExpression(raw string, expr Expression) {
	b.flushText()
	b.segments = append(b.segments, ExpressionSegment{Raw: raw, Expr: expr})
}

// Empty reports whether nothing has been written yet.
func (b *InterpolationBuffer) Empty() bool {
	return b.text.Len() == 0 && len(b.segments) == 0
}

func (b *InterpolationBuffer) flushText() {
	if b.text.Len() == 0 {
		return
	}

	b.segments = append(b.segments, LiteralSegment{Text: b.text.String()})
	b.text.Reset()
}

// Interpolation finalizes the buffer into an [Interpolation] covering span.
// The buffer may be reused afterward; its contents are reset.
func (b *InterpolationBuffer) Interpolation(span Span) Interpolation {
	b.flushText()

	segments := b.segments
	b.segments = nil

	return Interpolation{Segments: segments, span: span}
}
