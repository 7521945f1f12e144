package lang

// RawValue captures raw statement text as an interpolation, resolving
// "#{}" expressions and leaving everything else uninterpreted. Scanning
// stops at end of input or at a statement boundary (";", "{", "}") outside
// any parentheses or brackets; an unmatched ")" or "]" also ends the scan
// so the caller can reject it. Quoted strings and loud comments are copied
// verbatim, so boundary characters inside them do not end the value, and
// no line-ending normalization is applied.
func (p *Parser) RawValue() (Interpolation, error) {
	c := p.cursor
	start := c.Save()

	var (
		buffer InterpolationBuffer
		depth  int
	)

loop:
	for {
		switch c.Peek() {
		case EOF:
			break loop

		case '\\':
			buffer.WriteRune(c.Read())

			if !c.Done() {
				buffer.WriteRune(c.Read())
			}

		case '"', '\'':
			quoted := c.Save()

			if err := p.skipString(); err != nil {
				return Interpolation{}, err
			}

			buffer.WriteString(c.Substring(quoted))

		case '/':
			if c.PeekAt(1) != '*' {
				buffer.WriteRune(c.Read())

				continue
			}

			comment := c.Save()

			if err := p.skipLoudComment(); err != nil {
				return Interpolation{}, err
			}

			buffer.WriteString(c.Substring(comment))

		case '#':
			if c.PeekAt(1) != '{' {
				buffer.WriteRune(c.Read())

				continue
			}

			segment, err := p.singleInterpolation()
			if err != nil {
				return Interpolation{}, err
			}

			buffer.AddExpression(segment.Raw, segment.Expr)

		case '(', '[':
			depth++
			buffer.WriteRune(c.Read())

		case ')', ']':
			if depth == 0 {
				break loop
			}

			depth--
			buffer.WriteRune(c.Read())

		case ';', '{', '}':
			if depth == 0 {
				break loop
			}

			buffer.WriteRune(c.Read())

		default:
			buffer.WriteRune(c.Read())
		}
	}

	return buffer.Interpolation(c.SpanFrom(start)), nil
}

// skipString consumes a quoted string literal, honoring backslash escapes.
// Strings are opaque to the scanner; their contents are never interpreted
// or normalized.
func (p *Parser) skipString() error {
	c := p.cursor
	quote := c.Read()

	for {
		switch c.Read() {
		case quote:
			return nil

		case '\\':
			c.Read()

		case EOF:
			return c.errorAt(c.Position(), "expected closing quote")
		}
	}
}
