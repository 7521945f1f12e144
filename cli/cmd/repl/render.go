package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/slatecss/slate/lang"
)

// Statement tree styles.
var (
	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// renderSheet renders the scanned statement tree followed by any
// deprecation warnings.
func renderSheet(sheet *lang.Stylesheet) string {
	var b strings.Builder

	if len(sheet.Statements) == 0 {
		b.WriteString(hintStyle.Render("  (no statements)"))
		b.WriteString("\n")
	}

	for _, st := range sheet.Statements {
		renderStatement(&b, st, 1)
	}

	for _, warning := range sheet.Warnings {
		b.WriteString(warnStyle.Render(fmt.Sprintf(
			"warning: %s: %s", warning.Span.Start, warning.Message,
		)))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// renderStatement writes one statement line and recurses into its block.
func renderStatement(b *strings.Builder, st lang.Statement, depth int) {
	pad := strings.Repeat("  ", depth)

	switch node := st.(type) {
	case *lang.SilentComment:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("silent comment"))
		b.WriteString(" ")
		b.WriteString(hintStyle.Render(snippet(node.Text)))
		b.WriteString("\n")

	case *lang.LoudComment:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("loud comment"))
		b.WriteString(" ")
		b.WriteString(hintStyle.Render(snippet(node.String())))
		b.WriteString("\n")

	case *lang.VariableDeclaration:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("variable"))
		b.WriteString(" ")
		b.WriteString(nameStyle.Render("$" + node.Name))
		b.WriteString(textStyle.Render(": " + snippet(node.Value.String())))
		b.WriteString("\n")

	case *lang.Declaration:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("declaration"))
		b.WriteString(" ")
		b.WriteString(textStyle.Render(snippet(node.Text.String())))
		b.WriteString("\n")

	case *lang.StyleRule:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("style rule"))
		b.WriteString(" ")
		b.WriteString(textStyle.Render(snippet(node.Prelude.String())))
		b.WriteString("\n")

		for _, child := range node.Block.Statements {
			renderStatement(b, child, depth+1)
		}

	case *lang.AtRule:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("at-rule"))
		b.WriteString(" ")
		b.WriteString(nameStyle.Render("@" + node.Name))

		if prelude := snippet(node.Prelude.String()); prelude != "" {
			b.WriteString(textStyle.Render(" " + prelude))
		}

		b.WriteString("\n")

		if node.Block != nil {
			for _, child := range node.Block.Statements {
				renderStatement(b, child, depth+1)
			}
		}

	case *lang.IfRule:
		for i, clause := range node.Clauses {
			b.WriteString(pad)

			switch {
			case i == 0:
				b.WriteString(nameStyle.Render("@if"))
				b.WriteString(textStyle.Render(
					" " + snippet(clause.Condition.String()),
				))

			case clause.Unconditional():
				b.WriteString(nameStyle.Render("@else"))

			default:
				b.WriteString(nameStyle.Render("@else if"))
				b.WriteString(textStyle.Render(
					" " + snippet(clause.Condition.String()),
				))
			}

			b.WriteString("\n")

			for _, child := range clause.Block.Statements {
				renderStatement(b, child, depth+1)
			}
		}

	default:
		b.WriteString(pad)
		b.WriteString(kindStyle.Render("statement"))
		b.WriteString(" ")
		b.WriteString(hintStyle.Render(st.Span().String()))
		b.WriteString("\n")
	}
}

// snippet collapses whitespace so statement lines stay on one row.
func snippet(s string) string {
	return varPreview(s)
}
