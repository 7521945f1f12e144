package lang

// defaultVariableParser scans a "$name: value" declaration, capturing the
// value as raw interpolated text. A silent comment scanned immediately
// before the declaration is claimed from the parser's last-comment slot
// and attached to the node.
func defaultVariableParser(p *Parser) (Statement, error) {
	c := p.Cursor()
	comment := p.TakeLastSilentComment()
	start := c.Save()

	name, err := p.variableName()
	if err != nil {
		return nil, err
	}

	if p.PlainCSS() {
		return nil, c.errorSpan(c.SpanFrom(start),
			"variables aren't supported in plain CSS")
	}

	if err := p.Whitespace(); err != nil {
		return nil, err
	}

	if err := c.ExpectRune(':'); err != nil {
		return nil, err
	}

	if err := p.Whitespace(); err != nil {
		return nil, err
	}

	value, err := p.RawValue()
	if err != nil {
		return nil, err
	}

	if len(value.Segments) == 0 {
		return nil, c.errorAt(c.Position(), "expected value")
	}

	declaration := &VariableDeclaration{
		Name:    name,
		Value:   value,
		Comment: comment,
		span:    c.SpanFrom(start),
	}

	if err := p.ExpectStatementSeparator(); err != nil {
		return nil, err
	}

	return declaration, nil
}

// variableName consumes a "$" sigil and the identifier that follows,
// returning the name without the sigil.
func (p *Parser) variableName() (string, error) {
	if err := p.cursor.ExpectRune('$'); err != nil {
		return "", err
	}

	return p.Identifier()
}
