package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseVariable(t *testing.T, source string, opts ...Option) *VariableDeclaration {
	t.Helper()

	sheet, err := ParseString(context.Background(), source, opts...)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	decl, ok := sheet.Statements[0].(*VariableDeclaration)
	require.True(t, ok)

	return decl
}

func TestExpressionNesting(t *testing.T) {
	t.Parallel()

	decl := parseVariable(t, "$a: #{fn({k: v}, [1, 2])};")

	exprs := decl.Value.Expressions()
	require.Len(t, exprs, 1)

	raw, ok := exprs[0].(*RawExpression)
	require.True(t, ok)
	assert.Equal(t, "fn({k: v}, [1, 2])", raw.Source)
}

func TestExpressionQuotedDelimiters(t *testing.T) {
	t.Parallel()

	decl := parseVariable(t, `$a: #{"}" + 'x'};`)

	exprs := decl.Value.Expressions()
	require.Len(t, exprs, 1)

	raw, ok := exprs[0].(*RawExpression)
	require.True(t, ok)
	assert.Equal(t, `"}" + 'x'`, raw.Source)
}

func TestExpressionSourceTrimmed(t *testing.T) {
	t.Parallel()

	decl := parseVariable(t, "$a: #{ two };")

	exprs := decl.Value.Expressions()
	require.Len(t, exprs, 1)

	raw, ok := exprs[0].(*RawExpression)
	require.True(t, ok)
	assert.Equal(t, "two ", raw.Source)
	assert.Equal(t, "two", raw.ExprSource())
}

func TestExpressionUnterminated(t *testing.T) {
	t.Parallel()

	_, err := ParseString(context.Background(), "$a: #{x")
	require.Error(t, err)

	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, `expected "}"`, syntax.Message)
}

func TestExpressionPlainCSS(t *testing.T) {
	t.Parallel()

	source := "a: #{x};"

	_, err := ParseString(context.Background(), source, WithPlainCSS(true))
	require.Error(t, err)

	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, "interpolation isn't allowed in plain CSS", syntax.Message)
	assert.Equal(t, "#{x}", syntax.Span.Text(source))
}

func TestExpressionCompile(t *testing.T) {
	t.Parallel()

	t.Run("valid program", func(t *testing.T) {
		t.Parallel()

		decl := parseVariable(t, "$a: #{1 + 2};", WithCompileExprs(true))

		exprs := decl.Value.Expressions()
		require.Len(t, exprs, 1)

		raw, ok := exprs[0].(*RawExpression)
		require.True(t, ok)
		require.NotNil(t, raw.Program)
	})

	t.Run("invalid program", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString(context.Background(), "$a: #{1 +};", WithCompileExprs(true))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExprCompile)
	})

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		// Without compilation the body is captured, not interpreted, so
		// even text that would not compile scans cleanly.
		decl := parseVariable(t, "$a: #{1 +};")

		exprs := decl.Value.Expressions()
		require.Len(t, exprs, 1)

		raw, ok := exprs[0].(*RawExpression)
		require.True(t, ok)
		assert.Nil(t, raw.Program)
	})
}

type prefixedExpression struct {
	text string
	span Span
}

func (e prefixedExpression) Span() Span { return e.span }

func TestExpressionCustomParser(t *testing.T) {
	t.Parallel()

	custom := func(p *Parser) (Expression, error) {
		c := p.Cursor()
		start := c.Save()

		for c.Peek() != '}' && !c.Done() {
			c.Read()
		}

		return prefixedExpression{
			text: "expr:" + c.Substring(start),
			span: c.SpanFrom(start),
		}, nil
	}

	decl := parseVariable(t, "$a: #{40 + 2};", WithExpressionParser(custom))

	exprs := decl.Value.Expressions()
	require.Len(t, exprs, 1)

	got, ok := exprs[0].(prefixedExpression)
	require.True(t, ok)
	assert.Equal(t, "expr:40 + 2", got.text)
}

func TestExpressionNilDelegate(t *testing.T) {
	t.Parallel()

	_, err := ParseString(context.Background(), "$a: #{x};", WithExpressionParser(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilDelegate)
}
