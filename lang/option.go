package lang

import "github.com/slatecss/slate/log"

// StatementFunc parses one statement at the current cursor position. The
// statement splitters call the configured functions whenever they land on
// content; implementations report malformed input through [*SyntaxError].
// A nil statement with a nil error is discarded by the splitters, which
// lets a function consume input without producing a node.
type StatementFunc func(p *Parser) (Statement, error)

// ExpressionFunc parses one embedded expression. It is invoked with the
// cursor just past the opening "#{" and must stop at the closing "}"
// without consuming it.
type ExpressionFunc func(p *Parser) (Expression, error)

// optionsKey holds the parser configuration that participates in cache
// keys. This type is gob-encodable for cache key hashing.
type optionsKey struct {
	plainCSS     bool
	compileExprs bool
}

// Option configures parser behavior.
type Option func(*Parser)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithPlainCSS restricts scanning to plain CSS: silent comments become
// errors instead of statements.
func WithPlainCSS(plain bool) Option {
	return func(p *Parser) {
		p.opts.plainCSS = plain
	}
}

// WithCompileExprs enables expression compilation during parsing. The
// default expression parser compiles each "#{}" body and stores the
// program on the [RawExpression]; malformed expressions become parse
// errors.
func WithCompileExprs(compile bool) Option {
	return func(p *Parser) {
		p.opts.compileExprs = compile
	}
}

// WithWarnHandler routes deprecation warnings to fn as they are recorded,
// in addition to collecting them on the parser.
func WithWarnHandler(fn WarnFunc) Option {
	return func(p *Parser) {
		p.warnHandler = fn
		p.custom = true
	}
}

// WithVariableParser replaces the default handler for statements beginning
// with "$".
func WithVariableParser(fn StatementFunc) Option {
	return func(p *Parser) {
		p.variableParser = fn
		p.custom = true
	}
}

// WithStatementParser replaces the default handler for statements that are
// not comments or variable declarations.
func WithStatementParser(fn StatementFunc) Option {
	return func(p *Parser) {
		p.statementParser = fn
		p.custom = true
	}
}

// WithExpressionParser replaces the default handler for "#{}" expression
// bodies.
func WithExpressionParser(fn ExpressionFunc) Option {
	return func(p *Parser) {
		p.expressionParser = fn
		p.custom = true
	}
}

// applyDefaults sets default option values on a parser.
func applyDefaults(p *Parser) {
	p.variableParser = defaultVariableParser
	p.statementParser = defaultStatementParser
	p.expressionParser = defaultExpressionParser
}

// applyOptions applies functional options to a parser.
func applyOptions(p *Parser, opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}
