// Package lang scans slate stylesheets — a CSS superset in the SCSS
// tradition — into statement sequences. It is a statement-level scanner:
// it partitions raw source into comments, variable declarations, and
// grammar statements by walking characters directly, and leaves the
// interior of each statement (selectors, values, conditions) as raw
// interpolated text for a grammar built on top of it.
//
// # Philosophy
//
// No tokenizer. The scanner inspects at most two characters to classify
// the next item and backtracks through saved cursor states when a
// speculative match fails ([Parser.ScanElse] is the canonical example).
// Statement interiors are captured, not parsed: a value is balanced raw
// text plus any "#{}" expressions found inside it. Everything deeper is
// delegated — a [StatementFunc] decides what a statement is, an
// [ExpressionFunc] decides what an expression is, and the defaults
// implement a small generic grammar of style rules, at-rules, conditional
// chains, and opaque declarations.
//
// # Grammar
//
// Informal EBNF for the statement layer:
//
//	Stylesheet → Statement* EOF
//	Block      → '{' Statement* '}'
//	Statement  → SilentComment | LoudComment | Variable | ';' | Delegate
//	Variable   → '$' Identifier ':' RawValue Sep
//	Delegate   → AtRule | StyleRule | Declaration   (default handlers)
//	AtRule     → '@' Identifier RawValue (Block | Sep)
//	StyleRule  → RawValue Block
//	Sep        → ';' | '}' | EOF                    (not consumed)
//	RawValue   → <balanced text and '#{' Expression '}' segments>
//
// # Example
//
//	$accent: #7c3aed;
//
//	// Base typography. Applies to everything
//	// below the fold.
//	article {
//	  color: $accent;
//	  /* rendered width: #{$cols * 80}px */
//	  @if $cols > 1 { columns: $cols; } @else { max-width: 40em; }
//	}
//
// scans to a variable declaration and a style rule whose block holds a
// declaration, a loud comment with one embedded expression, and a
// two-clause conditional. The consecutive "//" lines merge into a single
// [SilentComment] attached to nothing here, but a declaration following a
// silent comment can claim it through [Parser.TakeLastSilentComment].
//
// # Line endings
//
// Loud comment text normalizes CR, CRLF, and FF to LF. Nothing else does:
// silent comments and raw values keep their bytes exactly, which keeps
// span-based reconstruction of the source faithful.
//
// # Plain CSS mode
//
// With [WithPlainCSS] the scanner accepts only standard CSS: silent
// comments, "$" variables, and "#{}" interpolation become span-carrying
// errors. Loud comments remain available in every mode.
//
// # Errors
//
// Scanning performs no recovery. The first malformed construct unwinds
// the whole parse as a [*SyntaxError] locating the failure; deprecation
// findings (the "@elseif" spelling) are collected as [Warning] values and
// never interrupt the scan.
package lang
