package lang

// SilentComment scans a "//" comment block and records it as the parser's
// last silent comment. Consecutive "//" lines separated only by whitespace
// merge into one node; the stored text is the raw source substring, so
// interior line endings and the whitespace consumed while probing for a
// continuation line are preserved untouched.
func (p *Parser) SilentComment() (*SilentComment, error) {
	start, err := p.scanSilentComment()
	if err != nil {
		return nil, err
	}

	comment := &SilentComment{
		Text: p.cursor.Substring(start),
		span: p.cursor.SpanFrom(start),
	}
	p.lastSilent = comment

	return comment, nil
}

// skipSilentComment consumes a silent comment block without recording it.
func (p *Parser) skipSilentComment() error {
	_, err := p.scanSilentComment()

	return err
}

// scanSilentComment consumes a "//" comment block, merging continuation
// lines, and returns the cursor state at the block's start. In plain CSS
// mode the block is consumed in full and then rejected, so the error span
// covers the whole comment.
func (p *Parser) scanSilentComment() (State, error) {
	c := p.cursor
	start := c.Save()

	if err := c.Expect("//"); err != nil {
		return start, err
	}

	for {
		for !c.Done() && !isNewline(c.Peek()) {
			c.Read()
		}

		if c.Done() {
			break
		}

		p.whitespaceWithoutComments()

		if !c.Scan("//") {
			break
		}
	}

	if p.opts.plainCSS {
		return start, c.errorSpan(c.SpanFrom(start),
			"silent comments aren't allowed in plain CSS")
	}

	return start, nil
}

// LoudComment scans a "/* */" comment into an interpolation, resolving
// "#{}" expressions and normalizing CR, CRLF, and FF line endings to LF.
// The comment text includes both delimiters. Loud comments are permitted
// in plain CSS mode.
func (p *Parser) LoudComment() (*LoudComment, error) {
	c := p.cursor
	start := c.Save()

	if err := c.Expect("/*"); err != nil {
		return nil, err
	}

	var buffer InterpolationBuffer

	buffer.WriteString("/*")

	for {
		switch c.Peek() {
		case '#':
			if c.PeekAt(1) != '{' {
				buffer.WriteRune(c.Read())

				continue
			}

			segment, err := p.singleInterpolation()
			if err != nil {
				return nil, err
			}

			buffer.AddExpression(segment.Raw, segment.Expr)

		case '*':
			buffer.WriteRune(c.Read())

			if c.Peek() != '/' {
				continue
			}

			buffer.WriteRune(c.Read())

			return &LoudComment{
				Text: buffer.Interpolation(c.SpanFrom(start)),
			}, nil

		case '\r':
			c.Read()

			// A CRLF pair collapses to the LF copied on the next pass.
			if c.Peek() != '\n' {
				buffer.WriteRune('\n')
			}

		case '\f':
			c.Read()
			buffer.WriteRune('\n')

		case EOF:
			return nil, c.errorAt(c.Position(), "expected more input")

		default:
			buffer.WriteRune(c.Read())
		}
	}
}

// skipLoudComment consumes a "/* */" comment without recording it or
// resolving interpolation.
func (p *Parser) skipLoudComment() error {
	c := p.cursor

	if err := c.Expect("/*"); err != nil {
		return err
	}

	for {
		if c.Done() {
			return c.errorAt(c.Position(), "expected more input")
		}

		if c.Read() != '*' {
			continue
		}

		for c.Peek() == '*' {
			c.Read()
		}

		if c.ScanRune('/') {
			return nil
		}
	}
}
