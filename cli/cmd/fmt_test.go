package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// captureStdout runs fn with os.Stdout redirected into a pipe and returns
// everything written to it.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdout = w

	runErr := fn()

	w.Close()

	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}

	return buf.String(), runErr
}

// TestFmtValidSyntax tests that valid sources format to stdout.
func TestFmtValidSyntax(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "variable declaration",
			input:    "$accent:   #ff7a18  ;",
			contains: []string{"$accent: #ff7a18;"},
		},
		{
			name:     "style rule indents children",
			input:    "nav{color:red;}",
			contains: []string{"nav {", "  color:red;", "}"},
		},
		{
			name:     "silent comment reflows",
			input:    "// one\n   // two\nx: y;",
			contains: []string{"// one\n// two\n", "x: y;"},
		},
		{
			name:     "at rule without block",
			input:    "@charset \"utf-8\"   ;",
			contains: []string{"@charset \"utf-8\";"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testFS(t, map[string]string{
				"in.scss": tt.input,
			})

			fmtCmd := &Fmt{Indent: 2, Sources: []string{"in.scss"}}

			output, err := captureStdout(t, func() error {
				return fmtCmd.Run(ctx)
			})
			if err != nil {
				t.Fatalf("Fmt.Run() unexpected error = %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("Fmt.Run() output = %q, want to contain %q", output, want)
				}
			}
		})
	}
}

// TestFmtInvalidSyntax tests that malformed sources produce scan errors.
func TestFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated block", input: "nav {"},
		{name: "unterminated loud comment", input: "/* never closed"},
		{name: "unmatched closing brace", input: "}"},
		{name: "missing separator", input: "a: 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testFS(t, map[string]string{
				"in.scss": tt.input,
			})

			fmtCmd := &Fmt{Indent: 2, Sources: []string{"in.scss"}}

			if err := fmtCmd.Run(ctx); err == nil {
				t.Error("Fmt.Run() expected error but got nil")
			}
		})
	}
}

// TestFmtStdin tests formatting from standard input.
func TestFmtStdin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid from stdin", input: "$a: 1;", wantErr: false},
		{name: "invalid from stdin", input: "nav {", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldStdin := os.Stdin
			defer func() { os.Stdin = oldStdin }()

			r, w, err := os.Pipe()
			if err != nil {
				t.Fatal(err)
			}

			os.Stdin = r

			go func() {
				defer w.Close()
				io.WriteString(w, tt.input)
			}()

			ctx, _ := testFS(t, nil)
			fmtCmd := &Fmt{Indent: 2}

			_, err = captureStdout(t, func() error {
				return fmtCmd.Run(ctx)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("Fmt.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestFmtWrite tests that -w rewrites the source file in place.
func TestFmtWrite(t *testing.T) {
	ctx, fsys := testFS(t, nil)

	// Write with non-default permissions to verify they survive.
	err := afero.WriteFile(fsys, "in.scss", []byte("nav{color:red;}"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	fmtCmd := &Fmt{Indent: 2, Write: true, Sources: []string{"in.scss"}}

	output, err := captureStdout(t, func() error {
		return fmtCmd.Run(ctx)
	})
	if err != nil {
		t.Fatalf("Fmt.Run() unexpected error = %v", err)
	}

	if output != "" {
		t.Errorf("Fmt.Run() with -w wrote to stdout: %q", output)
	}

	data, err := afero.ReadFile(fsys, "in.scss")
	if err != nil {
		t.Fatal(err)
	}

	want := "nav {\n  color:red;\n}\n"
	if string(data) != want {
		t.Errorf("rewritten file = %q, want %q", string(data), want)
	}

	info, err := fsys.Stat("in.scss")
	if err != nil {
		t.Fatal(err)
	}

	if info.Mode().Perm() != 0o600 {
		t.Errorf("rewritten mode = %v, want 0600", info.Mode().Perm())
	}
}

// TestFmtWriteStdinFallsBack tests that -w with stdin still prints to
// stdout, since there is no file to rewrite.
func TestFmtWriteStdinFallsBack(t *testing.T) {
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdin = r

	go func() {
		defer w.Close()
		io.WriteString(w, "$a: 1;")
	}()

	ctx, _ := testFS(t, nil)
	fmtCmd := &Fmt{Indent: 2, Write: true}

	output, err := captureStdout(t, func() error {
		return fmtCmd.Run(ctx)
	})
	if err != nil {
		t.Fatalf("Fmt.Run() unexpected error = %v", err)
	}

	if !strings.Contains(output, "$a: 1;") {
		t.Errorf("Fmt.Run() output = %q, want the formatted source", output)
	}
}

// TestFmtCompact tests single-line output with indent zero.
func TestFmtCompact(t *testing.T) {
	ctx, _ := testFS(t, map[string]string{
		"in.scss": "nav {\n  color: red;\n  a { top: 0; }\n}\n",
	})

	fmtCmd := &Fmt{Indent: 0, Sources: []string{"in.scss"}}

	output, err := captureStdout(t, func() error {
		return fmtCmd.Run(ctx)
	})
	if err != nil {
		t.Fatalf("Fmt.Run() unexpected error = %v", err)
	}

	want := "nav { color: red; a { top: 0; } }\n"
	if output != want {
		t.Errorf("Fmt.Run() output = %q, want %q", output, want)
	}
}
