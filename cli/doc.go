// Package cli contains the command line interface for slate.
//
// # Usage
//
// The CLI provides logging and profiling configuration:
//
//	slate --log-level=debug --pprof-mode=cpu
//
// # Scanner
//
// The package uses the lang package's statement scanner with both string
// and streaming entry points:
//
//   - [lang.ParseString]: Scan a stylesheet held in memory
//   - [lang.ParseReader]: Scan a stylesheet from an io.Reader
//   - [lang.Stylesheet.All]: Iterate over statements using iter.Seq
//   - [lang.Walk]: Visit every statement and its children
//
// Utility:
//   - [lang.ClearCache]: Clear all cached stylesheets (useful for testing)
//
// [lang.ParseReader] caches scanned stylesheets by source content, ensuring
// identical content is scanned only once even when accessed from multiple
// goroutines.
//
// Example usage:
//
//	sheet, err := lang.ParseString(ctx, `$accent: #ff7a18;`)
//	if err != nil {
//	    return err
//	}
//
//	for st := range sheet.All() {
//	    fmt.Println(st.Span())
//	}
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// YAML config files and converts them to Kong flag values. A JSON config
// file is honored as well when present.
//
// # Scanner Options
//
//   - --plain-css: Restrict input to plain CSS syntax
//   - --compile-exprs: Compile #{} expressions while scanning
//   - --load-path, -I: Add a directory to the stylesheet search path
//     (also read from the SLATE_PATH environment variable)
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include callsite information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//		go build -tags pprof -o slate .
//
//	  - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//	    heap, mem, mutex, thread, trace)
//	  - --pprof-dir: Set profile output directory (default:
//
// ~/.cache/slate/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	slate --log-level=debug --pprof-mode=cpu
//
//	# Text format with heap profiling
//	slate --log-format=text --pprof-mode=heap
//
//	# Custom profile directory
//	slate --pprof-mode=allocs --pprof-dir=/tmp/profiles
package cli
