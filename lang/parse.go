package lang

import (
	"log/slog"

	"github.com/slatecss/slate/log"
)

// Parser is a statement-level scanner for slate stylesheets. It walks the
// source one character at a time, partitioning it into comments, variable
// declarations, and grammar statements, and delegates the interior of each
// statement to the configured [StatementFunc] and [ExpressionFunc]
// handlers. A Parser scans exactly one source and is not safe for
// concurrent use; construct one with [New] per input.
type Parser struct {
	cursor *Cursor
	logger log.Logger
	opts   optionsKey

	// custom is set when any option was applied that makes results
	// unsuitable for the shared parse cache.
	custom bool

	variableParser   StatementFunc
	statementParser  StatementFunc
	expressionParser ExpressionFunc

	warnHandler WarnFunc
	warnings    []Warning

	lastSilent *SilentComment
}

// New constructs a parser over source. Without options it scans the full
// slate syntax using the default grammar handlers.
func New(source string, opts ...Option) *Parser {
	p := &Parser{cursor: NewCursor(source)}

	applyDefaults(p)
	applyOptions(p, opts...)

	return p
}

// Cursor exposes the parser's cursor so statement and expression handlers
// can scan the source directly.
func (p *Parser) Cursor() *Cursor { return p.cursor }

// PlainCSS reports whether the parser rejects syntax extensions.
func (p *Parser) PlainCSS() bool { return p.opts.plainCSS }

// CompileExprs reports whether "#{}" bodies are compiled during scanning.
func (p *Parser) CompileExprs() bool { return p.opts.compileExprs }

// Warnings returns the deprecation warnings recorded so far, in source
// order.
func (p *Parser) Warnings() []Warning { return p.warnings }

// LastSilentComment returns the most recently scanned silent comment
// without clearing it.
func (p *Parser) LastSilentComment() *SilentComment { return p.lastSilent }

// TakeLastSilentComment returns the most recently scanned silent comment
// and clears the slot, so a grammar production can claim the comment that
// directly precedes it.
func (p *Parser) TakeLastSilentComment() *SilentComment {
	comment := p.lastSilent
	p.lastSilent = nil

	return comment
}

// warn records a deprecation warning and forwards it to the configured
// handler.
func (p *Parser) warn(w Warning) {
	p.warnings = append(p.warnings, w)

	if p.warnHandler != nil {
		p.warnHandler(w)
	}

	p.logger.Warn("deprecated syntax", slog.Any("warning", w))
}

// Parse scans the entire source as a top-level statement sequence.
func (p *Parser) Parse() (*Stylesheet, error) {
	start := p.cursor.Save()

	statements, err := p.Statements(p.statementParser)
	if err != nil {
		return nil, err
	}

	p.logger.Trace("scan complete",
		slog.Int("statements", len(statements)),
		slog.Int("warnings", len(p.warnings)),
	)

	return &Stylesheet{
		Statements: statements,
		Warnings:   p.warnings,
		Source:     p.cursor.Source(),
		span:       p.cursor.SpanFrom(start),
	}, nil
}

// Children scans a brace-delimited statement list. The cursor must be
// positioned at the opening "{"; on success it has consumed the matching
// "}". Statements that are not comments or variable declarations are read
// by child, which must consume exactly one balanced statement. A nil
// statement from child is discarded.
func (p *Parser) Children(child StatementFunc) ([]Statement, error) {
	if child == nil {
		return nil, ErrNilDelegate.With(slog.String("delegate", "statement"))
	}

	c := p.cursor

	if err := c.ExpectRune('{'); err != nil {
		return nil, err
	}

	var children []Statement

	for {
		p.whitespaceWithoutComments()

		switch c.Peek() {
		case '$':
			statement, err := p.variable()
			if err != nil {
				return nil, err
			}

			children = append(children, statement)

		case '/':
			statement, err := p.comment(child)
			if err != nil {
				return nil, err
			}

			if statement != nil {
				children = append(children, statement)
			}

		case ';':
			c.Read()

		case '}':
			c.Read()

			return children, nil

		case EOF:
			return nil, c.ExpectRune('}')

		default:
			statement, err := child(p)
			if err != nil {
				return nil, err
			}

			if statement != nil {
				children = append(children, statement)
			}
		}
	}
}

// Statements scans top-level statements until the source is exhausted.
// The classification matches [Parser.Children] except that no braces
// delimit the sequence; a "}" is left for statement to reject. A nil
// statement from statement is discarded, so handlers can consume
// directives that produce no node.
func (p *Parser) Statements(statement StatementFunc) ([]Statement, error) {
	if statement == nil {
		return nil, ErrNilDelegate.With(slog.String("delegate", "statement"))
	}

	c := p.cursor

	var statements []Statement

	for {
		p.whitespaceWithoutComments()

		switch c.Peek() {
		case EOF:
			return statements, nil

		case '$':
			node, err := p.variable()
			if err != nil {
				return nil, err
			}

			statements = append(statements, node)

		case '/':
			node, err := p.comment(statement)
			if err != nil {
				return nil, err
			}

			if node != nil {
				statements = append(statements, node)
			}

		case ';':
			c.Read()

		default:
			node, err := statement(p)
			if err != nil {
				return nil, err
			}

			if node != nil {
				statements = append(statements, node)
			}
		}
	}
}

// variable dispatches to the configured variable handler.
func (p *Parser) variable() (Statement, error) {
	if p.variableParser == nil {
		return nil, ErrNilDelegate.With(slog.String("delegate", "variable"))
	}

	return p.variableParser(p)
}

// comment scans the comment starting at "/", or falls back to fallback
// when the "/" does not introduce one.
func (p *Parser) comment(fallback StatementFunc) (Statement, error) {
	switch p.cursor.PeekAt(1) {
	case '/':
		return p.SilentComment()

	case '*':
		return p.LoudComment()

	default:
		return fallback(p)
	}
}

// ScanElse reports whether an else-clause introducer follows, consuming it
// when present. "@else" leaves the cursor just past the keyword. The
// deprecated "@elseif" spelling records a warning and rewinds two
// characters so the remaining "if" scans as a separate keyword. On a
// non-match the cursor is fully restored, so callers may try other
// productions next. The ifIndentation argument is the indentation level of
// the governing "@if"; the brace syntax does not consult it.
func (p *Parser) ScanElse(ifIndentation int) bool {
	c := p.cursor
	start := c.Save()

	if err := p.Whitespace(); err != nil {
		// The malformed comment is rescanned as a statement by the caller,
		// which surfaces the error with the same span.
		c.Restore(start)

		return false
	}

	beforeAt := c.Save()

	if c.ScanRune('@') {
		if p.ScanIdentifier("else") {
			return true
		}

		if p.ScanIdentifier("elseif") {
			p.warn(Warning{
				Deprecation: DeprecationElseIf,
				Message:     `@elseif is deprecated; use "@else if" instead`,
				Span:        c.SpanFrom(beforeAt),
			})

			c.Rewind(2)

			return true
		}
	}

	c.Restore(start)

	return false
}

// ScanIdentifier consumes the case-sensitive keyword text when it appears
// at the cursor followed by a non-identifier character or end of input.
// The cursor does not move on a failed match.
func (p *Parser) ScanIdentifier(text string) bool {
	c := p.cursor
	start := c.Save()

	for _, r := range text {
		if !c.ScanRune(r) {
			c.Restore(start)

			return false
		}
	}

	if p.lookingAtIdentifierBody() {
		c.Restore(start)

		return false
	}

	return true
}

// Identifier consumes a CSS identifier, including custom-property names
// beginning with "--" and vendor prefixes beginning with "-".
func (p *Parser) Identifier() (string, error) {
	c := p.cursor
	start := c.Save()

	if c.ScanRune('-') && c.ScanRune('-') {
		for isName(c.Peek()) {
			c.Read()
		}

		return c.Substring(start), nil
	}

	if !isNameStart(c.Peek()) {
		c.Restore(start)

		return "", c.errorAt(c.Position(), "expected identifier")
	}

	for isName(c.Peek()) {
		c.Read()
	}

	return c.Substring(start), nil
}

func (p *Parser) lookingAtIdentifierBody() bool {
	return isName(p.cursor.Peek())
}

// ExpectStatementSeparator requires the current statement to be properly
// terminated. End of input and "}" terminate implicitly; a ";" satisfies
// the check but is left for the statement splitter to consume as an empty
// statement.
func (p *Parser) ExpectStatementSeparator() error {
	p.whitespaceWithoutComments()

	switch p.cursor.Peek() {
	case EOF, ';', '}':
		return nil

	default:
		return p.cursor.ExpectRune(';')
	}
}

// AtEndOfStatement reports whether the cursor sits on a statement
// boundary: end of input, a separator, or either brace.
func (p *Parser) AtEndOfStatement() bool {
	switch p.cursor.Peek() {
	case EOF, ';', '}', '{':
		return true

	default:
		return false
	}
}

// LookingAtChildren reports whether a block follows.
func (p *Parser) LookingAtChildren() bool {
	return p.cursor.Peek() == '{'
}

// Whitespace skips whitespace and comments. Comments consumed here are
// discarded rather than recorded as statements; errors inside them (an
// unterminated loud comment, a silent comment in plain CSS) propagate.
func (p *Parser) Whitespace() error {
	for {
		p.whitespaceWithoutComments()

		if p.cursor.Peek() != '/' {
			return nil
		}

		switch p.cursor.PeekAt(1) {
		case '/':
			if err := p.skipSilentComment(); err != nil {
				return err
			}

		case '*':
			if err := p.skipLoudComment(); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

// whitespaceWithoutComments skips whitespace only, leaving any comment for
// the caller to classify.
func (p *Parser) whitespaceWithoutComments() {
	for isWhitespace(p.cursor.Peek()) {
		p.cursor.Read()
	}
}
