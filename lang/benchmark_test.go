package lang

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

const benchmarkSource = `// palette
$accent: #ff7a18;
$radius: 4px;

/* layout shell for #{$page} */
.shell {
	display: grid;
	gap: #{$radius};

	nav {
		color: $accent;

		a { text-decoration: none; }
	}
}

@media (min-width: 600px) {
	.shell { gap: calc(#{$radius} * 2); }
}

@if $compact {
	.shell { padding: 0; }
} @else if $cozy {
	.shell { padding: 4px; }
} @else {
	.shell { padding: 8px; }
}
`

// BenchmarkParseString measures a full scan of a representative stylesheet.
func BenchmarkParseString(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseString(ctx, benchmarkSource)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseReader compares cached rescans of identical content against
// independent scans.
func BenchmarkParseReader(b *testing.B) {
	ctx := context.Background()

	b.Run("Cached", func(b *testing.B) {
		// Prime the cache
		_, _ = ParseReader(ctx, strings.NewReader(benchmarkSource))

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := ParseReader(ctx, strings.NewReader(benchmarkSource))
			if err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Uncached", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := ParseString(ctx, benchmarkSource)
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkFormat measures pretty-printing a scanned stylesheet.
func BenchmarkFormat(b *testing.B) {
	ctx := context.Background()

	sheet, err := ParseString(ctx, benchmarkSource)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := sheet.Format(ctx, io.Discard, 2); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRawValue measures scanning one balanced value.
func BenchmarkRawValue(b *testing.B) {
	source := `calc((#{$radius} + 2px) * 2) /* trailing */ url("a;b")`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := New(source)

		if _, err := p.RawValue(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMarshalJSON measures JSON encoding of a scanned stylesheet.
func BenchmarkMarshalJSON(b *testing.B) {
	ctx := context.Background()

	sheet, err := ParseString(ctx, benchmarkSource)
	if err != nil {
		b.Fatal(err)
	}

	var buf bytes.Buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()

		if err := sheet.FormatJSON(ctx, &buf, 0); err != nil {
			b.Fatal(err)
		}
	}
}
