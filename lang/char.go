package lang

// Character classes follow the CSS Syntax Module definitions. The scanner
// itself only branches on ASCII delimiters; these classes matter for
// keyword boundaries and identifier scanning.

// isWhitespace reports whether r is a CSS whitespace character: space, tab,
// or one of the newline characters.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || isNewline(r)
}

// isNewline reports whether r is a CSS newline character. CR and FF are
// newline characters even though only loud comments normalize them to LF.
func isNewline(r rune) bool {
	return r == '\n' || r == '\r' || r == '\f'
}

// isDigit reports whether r is an ASCII decimal digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isNameStart reports whether r can begin an identifier: a letter, an
// underscore, or any non-ASCII code point.
func isNameStart(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r == '_' ||
		r >= 0x80
}

// isName reports whether r can continue an identifier body.
func isName(r rune) bool {
	return isNameStart(r) || isDigit(r) || r == '-'
}
