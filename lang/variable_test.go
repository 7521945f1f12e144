package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableDeclaration(t *testing.T) {
	t.Parallel()

	source := "$accent: #ff7a18;"

	sheet, err := ParseString(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	decl, ok := sheet.Statements[0].(*VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "accent", decl.Name)
	assert.Equal(t, "#ff7a18", decl.Value.String())
	assert.Nil(t, decl.Comment)
	assert.Equal(t, "$accent: #ff7a18", decl.Span().Text(source))
}

func TestVariableValueKeepsRawText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "parens and brackets nest",
			source: "$list: (a, b), [c; d];",
			want:   "(a, b), [c; d]",
		},
		{
			name:   "quoted separators are opaque",
			source: `$s: "a;b" + 'c{d}';`,
			want:   `"a;b" + 'c{d}'`,
		},
		{
			name:   "loud comment copied verbatim",
			source: "$v: 1 /* ; not a separator */ 2;",
			want:   "1 /* ; not a separator */ 2",
		},
		{
			name:   "backslash escapes the separator",
			source: `$v: a\;b;`,
			want:   `a\;b`,
		},
		{
			name:   "hash without brace stays literal",
			source: "$color: #abc;",
			want:   "#abc",
		},
		{
			name:   "terminated by end of input",
			source: "$v: 12px",
			want:   "12px",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sheet, err := ParseString(context.Background(), tt.source)
			require.NoError(t, err)
			require.Len(t, sheet.Statements, 1)

			decl, ok := sheet.Statements[0].(*VariableDeclaration)
			require.True(t, ok)
			assert.Equal(t, tt.want, decl.Value.String())
		})
	}
}

func TestVariableInterpolatedValue(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(), "$w: calc(#{$base} * 2);")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	decl, ok := sheet.Statements[0].(*VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "calc(#{$base} * 2)", decl.Value.String())
	assert.False(t, decl.Value.IsPlain())

	exprs := decl.Value.Expressions()
	require.Len(t, exprs, 1)

	raw, ok := exprs[0].(*RawExpression)
	require.True(t, ok)
	assert.Equal(t, "$base", raw.ExprSource())
}

func TestVariableErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "missing colon",
			source:  "$a 1;",
			wantMsg: `expected ":"`,
		},
		{
			name:    "missing value",
			source:  "$a: ;",
			wantMsg: "expected value",
		},
		{
			name:    "missing value at end of input",
			source:  "$a:",
			wantMsg: "expected value",
		},
		{
			name:    "missing name",
			source:  "$: 1;",
			wantMsg: "expected identifier",
		},
		{
			name:    "missing separator",
			source:  "$a: 1 { b: c }",
			wantMsg: `expected ";"`,
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

func TestVariablePlainCSS(t *testing.T) {
	t.Parallel()

	source := "$accent: #ff7a18;"

	_, err := ParseString(context.Background(), source, WithPlainCSS(true))
	require.Error(t, err)

	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, "variables aren't supported in plain CSS", syntax.Message)
	assert.Equal(t, "$accent", syntax.Span.Text(source),
		"the error span covers the sigil and name")
}

func TestVariableInsideBlock(t *testing.T) {
	t.Parallel()

	sheet, err := ParseString(context.Background(),
		"nav { $pad: 4px; padding: $pad }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rule, ok := sheet.Statements[0].(*StyleRule)
	require.True(t, ok)
	require.Len(t, rule.Block.Statements, 2)

	decl, ok := rule.Block.Statements[0].(*VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "pad", decl.Name)
	assert.Equal(t, "4px", decl.Value.String())
}

func TestVariableCommentSurvivesOtherStatements(t *testing.T) {
	t.Parallel()

	// Only another comment or a taking declaration replaces the slot, so the
	// comment still attaches across an intervening plain declaration.
	sheet, err := ParseString(context.Background(),
		"// palette\ncolor: red;\n$base: #333;\n")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 3)

	decl, ok := sheet.Statements[2].(*VariableDeclaration)
	require.True(t, ok)
	require.NotNil(t, decl.Comment)
	assert.Equal(t, []string{"palette"}, decl.Comment.Lines())
}
