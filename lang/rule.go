package lang

// defaultStatementParser scans one statement of the built-in grammar: an
// at-rule, a style rule, or an opaque declaration. It consumes exactly one
// balanced statement including any nested block, which is the contract the
// statement splitters rely on.
func defaultStatementParser(p *Parser) (Statement, error) {
	c := p.Cursor()

	switch c.Peek() {
	case '@':
		return p.atRule()

	case '}':
		return nil, c.errorAt(c.Position(), `unmatched "}"`)

	default:
		return p.genericStatement()
	}
}

// atRule scans "@name prelude" followed by either a block or a statement
// separator. "@if" dispatches to the conditional-chain scanner.
func (p *Parser) atRule() (Statement, error) {
	c := p.cursor
	start := c.Save()

	if err := c.ExpectRune('@'); err != nil {
		return nil, err
	}

	name, err := p.Identifier()
	if err != nil {
		return nil, err
	}

	if name == "if" {
		return p.ifRule(start)
	}

	if err := p.Whitespace(); err != nil {
		return nil, err
	}

	prelude, err := p.RawValue()
	if err != nil {
		return nil, err
	}

	if p.LookingAtChildren() {
		block, err := p.block()
		if err != nil {
			return nil, err
		}

		return &AtRule{
			Name:    name,
			Prelude: prelude,
			Block:   block,
			span:    c.SpanFrom(start),
		}, nil
	}

	rule := &AtRule{Name: name, Prelude: prelude, span: c.SpanFrom(start)}

	if err := p.ExpectStatementSeparator(); err != nil {
		return nil, err
	}

	return rule, nil
}

// ifRule scans the conditional chain beginning at an already-consumed
// "@if", collecting "@else if" and "@else" clauses through [Parser.ScanElse]
// so the deprecated "@elseif" spelling is accepted with a warning.
func (p *Parser) ifRule(start State) (Statement, error) {
	c := p.cursor

	condition, block, err := p.ifClause()
	if err != nil {
		return nil, err
	}

	clauses := []IfClause{{Condition: condition, Block: *block}}

	for p.ScanElse(0) {
		if err := p.Whitespace(); err != nil {
			return nil, err
		}

		if p.ScanIdentifier("if") {
			condition, block, err := p.ifClause()
			if err != nil {
				return nil, err
			}

			clauses = append(clauses, IfClause{Condition: condition, Block: *block})

			continue
		}

		block, err := p.block()
		if err != nil {
			return nil, err
		}

		clauses = append(clauses, IfClause{Block: *block})

		break
	}

	return &IfRule{Clauses: clauses, span: c.SpanFrom(start)}, nil
}

// ifClause scans one "condition { ... }" arm of a conditional chain.
func (p *Parser) ifClause() (Interpolation, *Block, error) {
	c := p.cursor

	if err := p.Whitespace(); err != nil {
		return Interpolation{}, nil, err
	}

	condition, err := p.RawValue()
	if err != nil {
		return Interpolation{}, nil, err
	}

	if len(condition.Segments) == 0 {
		return Interpolation{}, nil, c.errorAt(c.Position(), "expected condition")
	}

	block, err := p.block()
	if err != nil {
		return Interpolation{}, nil, err
	}

	return condition, block, nil
}

// genericStatement scans either a style rule (prelude plus block) or a
// childless declaration terminated by a separator.
func (p *Parser) genericStatement() (Statement, error) {
	c := p.cursor
	start := c.Save()

	prelude, err := p.RawValue()
	if err != nil {
		return nil, err
	}

	if p.LookingAtChildren() {
		if len(prelude.Segments) == 0 {
			return nil, c.errorAt(c.Position(), "expected selector")
		}

		block, err := p.block()
		if err != nil {
			return nil, err
		}

		return &StyleRule{Prelude: prelude, Block: block, span: c.SpanFrom(start)}, nil
	}

	if len(prelude.Segments) == 0 {
		return nil, c.errorAt(c.Position(), "expected statement")
	}

	declaration := &Declaration{Text: prelude, span: c.SpanFrom(start)}

	if err := p.ExpectStatementSeparator(); err != nil {
		return nil, err
	}

	return declaration, nil
}

// block scans a braced statement list with the configured statement
// handler.
func (p *Parser) block() (*Block, error) {
	c := p.cursor
	start := c.Save()

	statements, err := p.Children(p.statementParser)
	if err != nil {
		return nil, err
	}

	return &Block{Statements: statements, span: c.SpanFrom(start)}, nil
}
