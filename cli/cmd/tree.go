package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/slatecss/slate/lang"
)

// treeNode is one rendered line of the statement tree with its nested
// statements attached.
type treeNode struct {
	label    string
	children []treeNode
}

// writeTree renders the statement structure of a scanned stylesheet as a
// box-drawing tree rooted at the source name.
func writeTree(w io.Writer, name string, sheet *lang.Stylesheet) error {
	var buf strings.Builder

	count := "statements"
	if len(sheet.Statements) == 1 {
		count = "statement"
	}

	fmt.Fprintf(&buf, "%s: %d %s\n", name, len(sheet.Statements), count)

	writeNodes(&buf, "", buildNodes(sheet.Statements, sheet.Source))

	_, err := io.WriteString(w, buf.String())

	return err
}

func writeNodes(buf *strings.Builder, prefix string, nodes []treeNode) {
	for i, node := range nodes {
		branch, nested := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, nested = "└─ ", "   "
		}

		buf.WriteString(prefix)
		buf.WriteString(branch)
		buf.WriteString(node.label)
		buf.WriteByte('\n')

		writeNodes(buf, prefix+nested, node.children)
	}
}

func buildNodes(statements []lang.Statement, source string) []treeNode {
	nodes := make([]treeNode, 0, len(statements))
	for _, st := range statements {
		nodes = append(nodes, buildNode(st, source))
	}

	return nodes
}

func buildNode(st lang.Statement, source string) treeNode {
	switch node := st.(type) {
	case *lang.SilentComment:
		return treeNode{label: "silent comment " + preview(node.Text)}

	case *lang.LoudComment:
		return treeNode{label: "loud comment " + preview(node.String())}

	case *lang.VariableDeclaration:
		return treeNode{label: fmt.Sprintf(
			"variable $%s: %s", node.Name, preview(node.Value.String()),
		)}

	case *lang.Declaration:
		return treeNode{label: "declaration " + preview(node.Text.String())}

	case *lang.StyleRule:
		return treeNode{
			label:    "style rule " + preview(node.Prelude.String()),
			children: buildNodes(node.Block.Statements, source),
		}

	case *lang.AtRule:
		at := treeNode{label: "at-rule @" + node.Name}

		if prelude := preview(node.Prelude.String()); prelude != "" {
			at.label += " " + prelude
		}

		if node.Block != nil {
			at.children = buildNodes(node.Block.Statements, source)
		}

		return at

	case *lang.IfRule:
		chain := treeNode{label: "conditional chain"}

		for i, clause := range node.Clauses {
			var label string

			switch {
			case i == 0:
				label = "@if " + preview(clause.Condition.String())

			case clause.Unconditional():
				label = "@else"

			default:
				label = "@else if " + preview(clause.Condition.String())
			}

			chain.children = append(chain.children, treeNode{
				label:    label,
				children: buildNodes(clause.Block.Statements, source),
			})
		}

		return chain

	default:
		// Foreign statement types render their source span.
		return treeNode{label: "statement " + preview(st.Span().Text(source))}
	}
}

// previewWidth caps tree labels so each statement stays on one line.
const previewWidth = 48

// preview collapses runs of whitespace and truncates long text.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	if len(s) <= previewWidth {
		return s
	}

	cut := previewWidth
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
