package lang

import (
	"iter"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Node is any element produced by scanning that knows its source extent.
type Node interface {
	// Span returns the node's extent in the scanned source.
	Span() Span
}

// Statement is a single top-level or block-level item collected by the
// statement splitters. The scanner produces [*SilentComment],
// [*LoudComment], and the nodes of the default grammar; statement parsers
// supplied by an embedding grammar may produce any type satisfying this
// interface. The splitters never inspect statements beyond collecting
// them, so foreign node types need nothing more than a span.
type Statement interface {
	Node
}

// Expression is one embedded expression consumed at a "#{" boundary. The
// default expression parser produces [*RawExpression]; embedding grammars
// may substitute richer representations.
type Expression interface {
	Node
}

// SilentComment is a "//" comment, invisible to plain CSS. Consecutive
// comment lines separated only by whitespace merge into a single node.
type SilentComment struct {
	// Text is the raw substring from the first "//" through the end of the
	// merge scan, including the markers and any interior line breaks
	// exactly as written. Silent comments never normalize line endings.
	Text string

	span Span
}

// Span implements [Node].
func (c *SilentComment) Span() Span { return c.span }

// String returns the raw comment text.
func (c *SilentComment) String() string { return c.Text }

// Lines splits the comment into its individual "//" lines with markers and
// surrounding whitespace trimmed.
func (c *SilentComment) Lines() []string {
	var lines []string

	for line := range strings.Lines(c.Text) {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "//"); ok {
			lines = append(lines, strings.TrimSpace(after))
		}
	}

	return lines
}

// LoudComment is a "/* */" comment preserved in plain CSS output. Its text
// may embed "#{}" expressions.
type LoudComment struct {
	// Text holds the comment including the opening "/*" and closing "*/"
	// markers, with CR, CRLF, and FF line endings normalized to LF in the
	// literal segments.
	Text Interpolation
}

// Span implements [Node].
func (c *LoudComment) Span() Span { return c.Text.Span() }

// String reconstructs the comment text with expression placeholders.
func (c *LoudComment) String() string { return c.Text.String() }

// VariableDeclaration is a "$name: value" statement produced by the default
// variable parser. The value is captured as raw balanced text; no
// expression semantics are applied.
type VariableDeclaration struct {
	// Name is the variable name without the "$" sigil.
	Name string
	// Value is the raw declaration value, which may embed "#{}" segments.
	Value Interpolation
	// Comment is the silent comment immediately preceding the declaration,
	// if one was scanned, taken from the parser's last-comment slot.
	Comment *SilentComment

	span Span
}

// Span implements [Node].
func (d *VariableDeclaration) Span() Span { return d.span }

// Declaration is an opaque childless statement of the default grammar,
// such as "color: red". Its text is captured as raw balanced content
// without further interpretation.
type Declaration struct {
	Text Interpolation

	span Span
}

// Span implements [Node].
func (d *Declaration) Span() Span { return d.span }

// Block is a braced statement list, spanning from "{" through "}".
type Block struct {
	Statements []Statement

	span Span
}

// Span implements [Node].
func (b *Block) Span() Span { return b.span }

// StyleRule is a default-grammar statement with a selector prelude and a
// block of children.
type StyleRule struct {
	// Prelude is the raw selector text, which may embed "#{}" segments.
	Prelude Interpolation
	Block   *Block

	span Span
}

// Span implements [Node].
func (r *StyleRule) Span() Span { return r.span }

// AtRule is a default-grammar "@name prelude" statement, optionally with a
// block of children. "@if" chains are represented by [IfRule] instead.
type AtRule struct {
	// Name is the rule name without the "@" sigil.
	Name string
	// Prelude is the raw text between the name and the block or separator;
	// it may be empty.
	Prelude Interpolation
	// Block is nil when the rule was terminated by a separator.
	Block *Block

	span Span
}

// Span implements [Node].
func (r *AtRule) Span() Span { return r.span }

// IfClause is one conditional arm of an [IfRule].
type IfClause struct {
	// Condition is the raw condition text. It has no segments for an
	// unconditional "@else" clause.
	Condition Interpolation
	Block     Block
}

// Unconditional reports whether the clause is a bare "@else".
func (c IfClause) Unconditional() bool {
	return len(c.Condition.Segments) == 0
}

// IfRule is an "@if" chain with its "@else if" and "@else" clauses attached
// in source order.
type IfRule struct {
	Clauses []IfClause

	span Span
}

// Span implements [Node].
func (r *IfRule) Span() Span { return r.span }

// RawExpression is the default representation of one "#{}" embedded
// expression: the delimited text captured exactly, plus the optional
// compiled program when expression compilation is enabled.
type RawExpression struct {
	// Source is the text between the braces, exactly as written.
	Source string
	// Program holds the compiled expression when the parser was configured
	// with expression compilation; nil otherwise.
	Program *vm.Program

	span Span
}

// Span implements [Node]. The span covers the source between the braces.
func (e *RawExpression) Span() Span { return e.span }

// ExprSource returns the expression text trimmed for compilation.
func (e *RawExpression) ExprSource() string {
	return strings.TrimSpace(e.Source)
}

// Stylesheet is the result of scanning one complete source: the top-level
// statements plus the deprecation warnings collected along the way.
type Stylesheet struct {
	Statements []Statement
	Warnings   []Warning
	// Source is the complete scanned text.
	Source string

	span Span
}

// Span implements [Node], covering the entire source.
func (s *Stylesheet) Span() Span { return s.span }

// All returns an iterator over the top-level statements.
func (s *Stylesheet) All() iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		for _, st := range s.Statements {
			if !yield(st) {
				return
			}
		}
	}
}

// Children returns the nested statements of st, or nil for childless
// statements and foreign node types.
func Children(st Statement) []Statement {
	switch node := st.(type) {
	case *StyleRule:
		if node.Block != nil {
			return node.Block.Statements
		}

	case *AtRule:
		if node.Block != nil {
			return node.Block.Statements
		}

	case *IfRule:
		var children []Statement
		for _, clause := range node.Clauses {
			children = append(children, clause.Block.Statements...)
		}

		return children
	}

	return nil
}

// Walk visits st and its nested statements depth-first, stopping early if
// fn returns false.
func Walk(st Statement, fn func(Statement) bool) bool {
	if !fn(st) {
		return false
	}

	for _, child := range Children(st) {
		if !Walk(child, fn) {
			return false
		}
	}

	return true
}
