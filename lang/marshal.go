package lang

import (
	"encoding/json"
	"strings"
)

// MarshalJSON implements json.Marshaler for Stylesheet.
func (s *Stylesheet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// ToMap converts the stylesheet to a native Go map structure suitable for
// JSON or YAML encoding. Statement kinds are identified by a "kind" key;
// foreign statement types produced by custom handlers appear as kind
// "statement" with their raw source text.
func (s *Stylesheet) ToMap() map[string]any {
	result := map[string]any{
		"statements": statementMaps(s.Statements, s.Source),
	}

	if len(s.Warnings) > 0 {
		warnings := make([]any, 0, len(s.Warnings))
		for _, w := range s.Warnings {
			warnings = append(warnings, map[string]any{
				"deprecation": w.Deprecation.String(),
				"message":     w.Message,
				"line":        w.Span.Start.Line,
				"column":      w.Span.Start.Column,
			})
		}

		result["warnings"] = warnings
	}

	return result
}

func statementMaps(statements []Statement, source string) []any {
	result := make([]any, 0, len(statements))
	for _, st := range statements {
		result = append(result, statementMap(st, source))
	}

	return result
}

func statementMap(st Statement, source string) map[string]any {
	switch node := st.(type) {
	case *SilentComment:
		return map[string]any{
			"kind": "silent_comment",
			"text": node.Text,
		}

	case *LoudComment:
		return map[string]any{
			"kind": "loud_comment",
			"text": interpolationNative(node.Text),
		}

	case *VariableDeclaration:
		result := map[string]any{
			"kind":  "variable_declaration",
			"name":  node.Name,
			"value": interpolationNative(node.Value),
		}
		if node.Comment != nil {
			result["comment"] = node.Comment.Text
		}

		return result

	case *Declaration:
		return map[string]any{
			"kind": "declaration",
			"text": interpolationNative(node.Text),
		}

	case *StyleRule:
		return map[string]any{
			"kind":     "style_rule",
			"selector": interpolationNative(node.Prelude),
			"children": statementMaps(node.Block.Statements, source),
		}

	case *AtRule:
		result := map[string]any{
			"kind": "at_rule",
			"name": node.Name,
		}
		if len(node.Prelude.Segments) > 0 {
			result["prelude"] = interpolationNative(node.Prelude)
		}
		if node.Block != nil {
			result["children"] = statementMaps(node.Block.Statements, source)
		}

		return result

	case *IfRule:
		clauses := make([]any, 0, len(node.Clauses))
		for _, clause := range node.Clauses {
			m := map[string]any{
				"children": statementMaps(clause.Block.Statements, source),
			}
			if !clause.Unconditional() {
				m["condition"] = interpolationNative(clause.Condition)
			}

			clauses = append(clauses, m)
		}

		return map[string]any{
			"kind":    "if_rule",
			"clauses": clauses,
		}

	default:
		return map[string]any{
			"kind": "statement",
			"text": st.Span().Text(source),
		}
	}
}

// interpolationNative flattens an interpolation for encoding: a plain
// interpolation becomes its literal string, and a mixed one becomes a list
// of literal strings and {"expr": body} maps in segment order.
func interpolationNative(i Interpolation) any {
	if text, ok := i.AsPlain(); ok {
		return text
	}

	segments := make([]any, 0, len(i.Segments))

	for _, seg := range i.Segments {
		switch s := seg.(type) {
		case LiteralSegment:
			segments = append(segments, s.Text)

		case ExpressionSegment:
			segments = append(segments, map[string]any{
				"expr": expressionBody(s.Raw),
			})
		}
	}

	return segments
}

// expressionBody strips the "#{" and "}" markers from a raw expression
// segment and trims the remainder.
func expressionBody(raw string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "#{"), "}")

	return strings.TrimSpace(body)
}
