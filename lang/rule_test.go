package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclaration(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(), "color: red;")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	decl, ok := sheet.Statements[0].(*Declaration)
	require.True(t, ok)
	assert.Equal(t, "color: red", decl.Text.String())
	assert.Equal(t, "color: red", decl.Span().Text(sheet.Source))
}

func TestParseStyleRule(t *testing.T) {
	t.Parallel()

	source := "nav a { color: red; margin: 0 }"

	sheet, err := ParseString(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rule, ok := sheet.Statements[0].(*StyleRule)
	require.True(t, ok)

	// The raw prelude keeps the padding before the brace.
	assert.Equal(t, "nav a ", rule.Prelude.String())
	assert.Equal(t, source, rule.Span().Text(source))

	require.NotNil(t, rule.Block)
	require.Len(t, rule.Block.Statements, 2)
	assert.IsType(t, &Declaration{}, rule.Block.Statements[0])
	assert.IsType(t, &Declaration{}, rule.Block.Statements[1])
}

func TestParseNestedRules(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(),
		"a { b { c: d } e: f }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	outer, ok := sheet.Statements[0].(*StyleRule)
	require.True(t, ok)
	require.Len(t, outer.Block.Statements, 2)

	inner, ok := outer.Block.Statements[0].(*StyleRule)
	require.True(t, ok)
	assert.Equal(t, "b ", inner.Prelude.String())
	require.Len(t, inner.Block.Statements, 1)
}

func TestParseEmptyBlock(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(), "nav {}")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rule, ok := sheet.Statements[0].(*StyleRule)
	require.True(t, ok)
	assert.Empty(t, rule.Block.Statements)
}

func TestParseAtRule(t *testing.T) {
	t.Parallel()

	t.Run("with block", func(t *testing.T) {
		t.Parallel()

		sheet, err := ParseString(context.Background(),
			"@media (min-width: 600px) { a { b: c } }")
		require.NoError(t, err)
		require.Len(t, sheet.Statements, 1)

		rule, ok := sheet.Statements[0].(*AtRule)
		require.True(t, ok)
		assert.Equal(t, "media", rule.Name)
		assert.Equal(t, "(min-width: 600px) ", rule.Prelude.String())
		require.NotNil(t, rule.Block)
		assert.Len(t, rule.Block.Statements, 1)
	})

	t.Run("with separator", func(t *testing.T) {
		t.Parallel()

		source := `@charset "utf-8";`

		sheet, err := ParseString(context.Background(), source)
		require.NoError(t, err)
		require.Len(t, sheet.Statements, 1)

		rule, ok := sheet.Statements[0].(*AtRule)
		require.True(t, ok)
		assert.Equal(t, "charset", rule.Name)
		assert.Equal(t, `"utf-8"`, rule.Prelude.String())
		assert.Nil(t, rule.Block)
		assert.Equal(t, `@charset "utf-8"`, rule.Span().Text(source))
	})

	t.Run("terminated by end of input", func(t *testing.T) {
		t.Parallel()

		sheet, err := ParseString(context.Background(), "@import url(x.css)")
		require.NoError(t, err)
		require.Len(t, sheet.Statements, 1)

		rule, ok := sheet.Statements[0].(*AtRule)
		require.True(t, ok)
		assert.Equal(t, "import", rule.Name)
		assert.Equal(t, "url(x.css)", rule.Prelude.String())
		assert.Nil(t, rule.Block)
	})

	t.Run("empty prelude", func(t *testing.T) {
		t.Parallel()

		sheet, err := ParseString(context.Background(), "@debug;")
		require.NoError(t, err)
		require.Len(t, sheet.Statements, 1)

		rule, ok := sheet.Statements[0].(*AtRule)
		require.True(t, ok)
		assert.Equal(t, "debug", rule.Name)
		assert.Empty(t, rule.Prelude.Segments)
		assert.Nil(t, rule.Block)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString(context.Background(), "@ media x {}")
		require.Error(t, err)

		var syntax *SyntaxError
		require.ErrorAs(t, err, &syntax)
		assert.Equal(t, "expected identifier", syntax.Message)
	})
}

func TestParseIfChain(t *testing.T) {
	t.Parallel()

	source := "@if $x { a: 1 } @else if $y { b: 2 } @else { c: 3 }"

	sheet, err := ParseString(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)
	assert.Empty(t, sheet.Warnings)

	rule, ok := sheet.Statements[0].(*IfRule)
	require.True(t, ok)
	require.Len(t, rule.Clauses, 3)

	assert.Equal(t, "$x ", rule.Clauses[0].Condition.String())
	assert.False(t, rule.Clauses[0].Unconditional())
	require.Len(t, rule.Clauses[0].Block.Statements, 1)

	assert.Equal(t, "$y ", rule.Clauses[1].Condition.String())
	assert.False(t, rule.Clauses[1].Unconditional())

	assert.True(t, rule.Clauses[2].Unconditional())
	require.Len(t, rule.Clauses[2].Block.Statements, 1)

	assert.Equal(t, source, rule.Span().Text(source))
}

func TestParseIfWithoutElse(t *testing.T) {
	t.Parallel()

	source := "@if $x { a: 1 } b { c: d }"

	sheet, err := ParseString(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 2)

	rule, ok := sheet.Statements[0].(*IfRule)
	require.True(t, ok)
	require.Len(t, rule.Clauses, 1)

	// Probing for "@else" must not consume the following rule.
	assert.Equal(t, "@if $x { a: 1 }", rule.Span().Text(source))
	assert.IsType(t, &StyleRule{}, sheet.Statements[1])
}

func TestParseElseIfDeprecated(t *testing.T) {
	t.Parallel()

	source := "@if $x { a: 1 } @elseif $y { b: 2 }"

	sheet, err := ParseString(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rule, ok := sheet.Statements[0].(*IfRule)
	require.True(t, ok)
	require.Len(t, rule.Clauses, 2)
	assert.Equal(t, "$y ", rule.Clauses[1].Condition.String())
	assert.False(t, rule.Clauses[1].Unconditional())

	require.Len(t, sheet.Warnings, 1)
	warning := sheet.Warnings[0]
	assert.Equal(t, DeprecationElseIf, warning.Deprecation)
	assert.Equal(t, `@elseif is deprecated; use "@else if" instead`,
		warning.Message)
	assert.Equal(t, "@elseif", warning.Span.Text(source))
	assert.Equal(t, 17, warning.Span.Start.Column)
}

func TestParseElseIfChainsFurther(t *testing.T) {
	t.Parallel()

	// The deprecated arm keeps the chain open for trailing clauses.
	sheet, err := ParseString(context.Background(),
		"@if $a { x: 1 } @elseif $b { y: 2 } @else { z: 3 }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rule, ok := sheet.Statements[0].(*IfRule)
	require.True(t, ok)
	require.Len(t, rule.Clauses, 3)
	assert.True(t, rule.Clauses[2].Unconditional())
	assert.Len(t, sheet.Warnings, 1)
}

func TestParseElseTerminatesChain(t *testing.T) {
	t.Parallel()

	// Anything after an unconditional "@else" belongs to the next statement,
	// so an orphan "@else" scans as a plain at-rule.
	sheet, err := ParseString(context.Background(),
		"@if $a { x: 1 } @else { y: 2 } @else { z: 3 }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 2)

	rule, ok := sheet.Statements[0].(*IfRule)
	require.True(t, ok)
	assert.Len(t, rule.Clauses, 2)

	orphan, ok := sheet.Statements[1].(*AtRule)
	require.True(t, ok)
	assert.Equal(t, "else", orphan.Name)
}

func TestParseIfErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "missing condition",
			source:  "@if { a: 1 }",
			wantMsg: "expected condition",
		},
		{
			name:    "condition at end of input",
			source:  "@if",
			wantMsg: "expected condition",
		},
		{
			name:    "missing block",
			source:  "@if $x",
			wantMsg: `expected "{"`,
		},
		{
			name:    "missing else-if condition",
			source:  "@if $x { a: 1 } @else if { b: 2 }",
			wantMsg: "expected condition",
		},
		{
			name:    "unterminated clause",
			source:  "@if $x { a: 1",
			wantMsg: `expected "}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseString(context.Background(), tt.source)
			require.Error(t, err)

			var syntax *SyntaxError
			require.ErrorAs(t, err, &syntax)
			assert.Equal(t, tt.wantMsg, syntax.Message)
		})
	}
}

func TestParseStatementErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "unmatched closing brace",
			source:  "}",
			wantMsg: `unmatched "}"`,
		},
		{
			name:    "unmatched brace after rule",
			source:  "a { b: c } }",
			wantMsg: `unmatched "}"`,
		},
		{
			name:    "block without selector",
			source:  "{ a: 1 }",
			wantMsg: "expected selector",
		},
		{
			name:    "unmatched closing paren",
			source:  ") x",
			wantMsg: "expected statement",
		},
		{
			name:    "unmatched closing bracket",
			source:  "] x",
			wantMsg: "expected statement",
		},
		{
			name:    "unterminated block",
			source:  "nav {",
			wantMsg: `expected "}"`,
		},
		{
			name:    "unterminated nested block",
			source:  "a { b { c: d }",
			wantMsg: `expected "}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseString(context.Background(), tt.source)
			require.Error(t, err)

			var syntax *SyntaxError
			require.ErrorAs(t, err, &syntax)
			assert.Equal(t, tt.wantMsg, syntax.Message)
		})
	}
}

func TestParseSemicolonRuns(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(), ";;; a: b ;;;")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	decl, ok := sheet.Statements[0].(*Declaration)
	require.True(t, ok)
	assert.Equal(t, "a: b ", decl.Text.String())
}

func TestParseSelectorInterpolation(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(),
		".item-#{$i} { width: #{$i * 10}px }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rule, ok := sheet.Statements[0].(*StyleRule)
	require.True(t, ok)
	assert.False(t, rule.Prelude.IsPlain())
	assert.Equal(t, ".item-#{$i} ", rule.Prelude.String())

	exprs := rule.Prelude.Expressions()
	require.Len(t, exprs, 1)

	raw, ok := exprs[0].(*RawExpression)
	require.True(t, ok)
	assert.Equal(t, "$i", raw.ExprSource())
}

func TestParsePlainCSSSubset(t *testing.T) {
	t.Parallel()

	// Plain CSS still accepts the whole default grammar minus extensions.
	sheet, err := ParseString(context.Background(),
		"@media print { nav { color: red } } /* keep */",
		WithPlainCSS(true))
	require.NoError(t, err)
	assert.Len(t, sheet.Statements, 2)
}
