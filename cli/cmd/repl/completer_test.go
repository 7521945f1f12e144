package repl

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
)

func TestWordBounds_StylesheetInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"at_keyword", "@el", 3, "@el", 0, 3},
		{"variable", "$acc", 4, "$acc", 0, 4},
		{"after_space", "nav a", 5, "a", 4, 5},
		{"after_colon", "color: re", 9, "re", 7, 9},
		{"after_brace", "a {wid", 6, "wid", 3, 6},
		{"interpolation_open", "#{$name", 7, "$name", 2, 7},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		// Hyphens are part of identifiers, not word boundaries.
		{"hyphenated_at_rule", "@at-ro", 6, "@at-ro", 0, 6},
		{"hyphenated_variable", "$base-col", 9, "$base-col", 0, 9},
		// Class selectors break at the dot.
		{"after_class_dot", ".nav", 4, "nav", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestScanCandidates_IncludesVariables(t *testing.T) {
	m := model{
		vars: []variable{
			{name: "accent", value: "#ff7a18"},
			{name: "base-color", value: "rebeccapurple"},
		},
	}

	candidates := m.scanCandidates()

	for _, want := range []string{"@if", "@else", "$accent", "$base-color"} {
		found := false

		for _, c := range candidates {
			if c == want {
				found = true

				break
			}
		}

		if !found {
			t.Errorf("scanCandidates() missing %q", want)
		}
	}
}

func TestComputeMatches_ScanMode(t *testing.T) {
	ti := textinput.New()
	ti.SetValue("@el")
	ti.SetCursor(3)

	m := model{input: ti, mode: modeScan}

	matches, _, start, end := m.computeMatches()

	if start != 0 || end != 3 {
		t.Errorf("word bounds = (%d, %d), want (0, 3)", start, end)
	}

	if len(matches) == 0 {
		t.Fatal("expected at least one match for \"@el\"")
	}

	for _, match := range matches {
		if match.Str == "@else" {
			return
		}
	}

	t.Error("expected \"@else\" among matches")
}

func TestComputeMatches_CtrlMode(t *testing.T) {
	ti := textinput.New()
	ti.SetValue("he")
	ti.SetCursor(2)

	m := model{input: ti, mode: modeCtrl}

	matches, _, _, _ := m.computeMatches()

	if len(matches) == 0 {
		t.Fatal("expected at least one match for \"he\"")
	}

	if matches[0].Str != "help" {
		t.Errorf("best match = %q, want %q", matches[0].Str, "help")
	}
}

func TestComputeMatches_EmptyWord(t *testing.T) {
	ti := textinput.New()
	ti.SetValue("a ")
	ti.SetCursor(2)

	m := model{input: ti, mode: modeScan}

	matches, _, _, _ := m.computeMatches()

	if matches != nil {
		t.Errorf("expected no matches for empty word, got %d", len(matches))
	}
}

func TestVarPreview_Truncates(t *testing.T) {
	long := strings.Repeat("rgba(0, 0, 0, 0.5) ", 10)

	got := varPreview(long)
	if len(got) > 43 {
		t.Errorf("preview too long: %d bytes", len(got))
	}

	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestVarPreview_CollapsesWhitespace(t *testing.T) {
	got := varPreview("1px\t solid\n  red")
	if got != "1px solid red" {
		t.Errorf("varPreview = %q, want %q", got, "1px solid red")
	}
}
