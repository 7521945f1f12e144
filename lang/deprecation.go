package lang

import "log/slog"

//go:generate go tool stringer --linecomment --type Deprecation --output deprecation_string.go

// Deprecation identifies a deprecated construct recognized by the scanner.
type Deprecation int

const (
	// DeprecationElseIf is the single-word "@elseif" spelling, accepted as
	// "@else if" with a warning.
	DeprecationElseIf Deprecation = iota // elseif
)

// Warning reports one use of a deprecated construct. Scanning continues
// normally after a warning; only malformed input is fatal.
type Warning struct {
	Deprecation Deprecation
	// Message describes the deprecated usage and its replacement.
	Message string
	// Span covers the deprecated text in the source.
	Span Span
}

// LogValue implements [slog.LogValuer].
func (w Warning) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("deprecation", w.Deprecation.String()),
		slog.String("message", w.Message),
		slog.Any("span", w.Span),
	)
}

// WarnFunc receives deprecation warnings as they are recorded. Handlers
// must not retain the warning's span beyond the call unless they copy it.
type WarnFunc func(Warning)
