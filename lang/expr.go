package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
)

// singleInterpolation consumes one "#{}" construct, delegating the body to
// the configured expression handler. The returned segment carries the full
// delimited source text alongside the parsed expression.
func (p *Parser) singleInterpolation() (ExpressionSegment, error) {
	if p.expressionParser == nil {
		return ExpressionSegment{}, ErrNilDelegate.With(
			slog.String("delegate", "expression"))
	}

	c := p.cursor
	start := c.Save()

	if err := c.Expect("#{"); err != nil {
		return ExpressionSegment{}, err
	}

	if err := p.Whitespace(); err != nil {
		return ExpressionSegment{}, err
	}

	body, err := p.expressionParser(p)
	if err != nil {
		return ExpressionSegment{}, err
	}

	if err := c.ExpectRune('}'); err != nil {
		return ExpressionSegment{}, err
	}

	if p.opts.plainCSS {
		return ExpressionSegment{}, c.errorSpan(c.SpanFrom(start),
			"interpolation isn't allowed in plain CSS")
	}

	return ExpressionSegment{Raw: c.Substring(start), Expr: body}, nil
}

// defaultExpressionParser captures the text of one "#{}" body without
// interpreting it, stopping at the closing "}". Parentheses, brackets, and
// braces nest, and quoted strings may contain any delimiter. With
// [WithCompileExprs] the body is also compiled as an expr program and
// attached to the result.
func defaultExpressionParser(p *Parser) (Expression, error) {
	c := p.Cursor()
	start := c.Save()

	var depth int

loop:
	for {
		switch c.Peek() {
		case EOF:
			return nil, c.ExpectRune('}')

		case '"', '\'':
			if err := p.skipString(); err != nil {
				return nil, err
			}

		case '(', '[', '{':
			depth++
			c.Read()

		case ')', ']':
			if depth > 0 {
				depth--
			}

			c.Read()

		case '}':
			if depth == 0 {
				break loop
			}

			depth--
			c.Read()

		default:
			c.Read()
		}
	}

	raw := &RawExpression{
		Source: c.Substring(start),
		span:   c.SpanFrom(start),
	}

	if !p.CompileExprs() {
		return raw, nil
	}

	program, err := expr.Compile(raw.ExprSource())
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(
			slog.String("source", raw.ExprSource()),
			slog.Any("span", raw.Span()),
		)
	}

	raw.Program = program

	return raw, nil
}
