package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the stylesheet back out as slate source. The output is
// normalized, not byte-identical: statement spacing and indentation follow
// the indent width, values lose the trailing padding the raw-value scanner
// keeps, and semicolon separators are always emitted. With indent 0 the
// output is compacted onto one line wherever the syntax allows; silent
// comments still terminate their line, since nothing else can end them.
func (s *Stylesheet) Format(_ context.Context, w io.Writer, indent int) error {
	f := &formatter{w: w, width: indent, source: s.Source, atLineStart: true}

	for i, st := range s.Statements {
		if i > 0 {
			f.separator()
		}

		f.statement(st, 0)
	}

	if !f.atLineStart {
		f.write("\n")
	}

	return f.err
}

// FormatJSON writes the stylesheet as JSON to the writer.
func (s *Stylesheet) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(s, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(s)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the stylesheet as YAML to the writer.
func (s *Stylesheet) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, s.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}

// formatter renders statements with a sticky error, so the printer logic
// stays free of per-write error plumbing. It tracks whether the last write
// ended a line: silent comments force a line break, and the spacing logic
// must not stack separators on top of it.
type formatter struct {
	w           io.Writer
	width       int
	source      string
	atLineStart bool
	err         error
}

func (f *formatter) pretty() bool { return f.width > 0 }

func (f *formatter) write(s string) {
	if f.err != nil || s == "" {
		return
	}

	_, f.err = io.WriteString(f.w, s)
	f.atLineStart = strings.HasSuffix(s, "\n")
}

// separator spaces two sibling top-level statements apart: a blank line
// when indented, a single space when compact.
func (f *formatter) separator() {
	switch {
	case f.pretty() && f.atLineStart:
		f.write("\n")

	case f.pretty():
		f.write("\n\n")

	case !f.atLineStart:
		f.write(" ")
	}
}

func (f *formatter) indent(depth int) {
	if f.pretty() {
		f.write(strings.Repeat(" ", f.width*depth))
	}
}

func (f *formatter) statement(st Statement, depth int) {
	switch node := st.(type) {
	case *SilentComment:
		f.silentComment(node, depth)

	case *LoudComment:
		f.write(node.Text.String())

	case *VariableDeclaration:
		f.write("$")
		f.write(node.Name)
		f.write(": ")
		f.write(trimValue(node.Value))
		f.write(";")

	case *Declaration:
		f.write(trimValue(node.Text))
		f.write(";")

	case *StyleRule:
		f.write(trimValue(node.Prelude))
		f.write(" ")
		f.block(node.Block, depth)

	case *AtRule:
		f.write("@")
		f.write(node.Name)

		if prelude := trimValue(node.Prelude); prelude != "" {
			f.write(" ")
			f.write(prelude)
		}

		if node.Block == nil {
			f.write(";")
		} else {
			f.write(" ")
			f.block(node.Block, depth)
		}

	case *IfRule:
		for i, clause := range node.Clauses {
			switch {
			case i == 0:
				f.write("@if ")
				f.write(trimValue(clause.Condition))
				f.write(" ")

			case clause.Unconditional():
				f.write(" @else ")

			default:
				f.write(" @else if ")
				f.write(trimValue(clause.Condition))
				f.write(" ")
			}

			f.block(&clause.Block, depth)
		}

	default:
		// Foreign statement types round-trip through their source span.
		f.write(strings.TrimSpace(st.Span().Text(f.source)))
	}
}

// silentComment reflows a merged comment block onto aligned "//" lines,
// ending with the line break that terminates any silent comment.
func (f *formatter) silentComment(node *SilentComment, depth int) {
	for i, line := range node.Lines() {
		if i > 0 {
			f.write("\n")
			f.indent(depth)
		}

		f.write("//")

		if line != "" {
			f.write(" ")
			f.write(line)
		}
	}

	f.write("\n")
}

func (f *formatter) block(b *Block, depth int) {
	if len(b.Statements) == 0 {
		f.write("{}")

		return
	}

	f.write("{")

	for _, st := range b.Statements {
		if f.pretty() {
			if !f.atLineStart {
				f.write("\n")
			}

			f.indent(depth + 1)
		} else if !f.atLineStart {
			f.write(" ")
		}

		f.statement(st, depth+1)
	}

	if f.pretty() {
		if !f.atLineStart {
			f.write("\n")
		}

		f.indent(depth)
	} else if !f.atLineStart {
		f.write(" ")
	}

	f.write("}")
}

// trimValue renders an interpolation without the trailing whitespace the
// raw-value scanner keeps between the value text and its terminator.
func trimValue(i Interpolation) string {
	return strings.TrimRight(i.String(), " \t\r\n\f")
}
