package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/conduit-lang/ontogen/internal/errors"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "Class", "Supertypes", "Properties")
	table.AddRow("Animal", "Individual", "1")
	table.AddRow("GuideDog", "Dog")

	table.Render()
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Class     Supertypes  Properties" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "────────  ──────────") {
		t.Errorf("unexpected separator %q", lines[1])
	}
	if lines[2] != "Animal    Individual  1" {
		t.Errorf("unexpected row %q", lines[2])
	}
	if lines[3] != "GuideDog  Dog         " {
		t.Errorf("unexpected row %q", lines[3])
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", table.Len())
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Classes", "3")
	kv.AddRow("Run", "abc")
	kv.Render()

	want := "Classes: 3\nRun:     abc\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Plan", true)
	if buf.String() != "Plan\n────\n" {
		t.Errorf("unexpected header %q", buf.String())
	}
}

func TestFormatErrorWithHints(t *testing.T) {
	err := errors.WithHint(errors.New("name collision"), "enable prefix mode")

	out := Format(FromError(err, true))
	if !strings.Contains(out, "✗ name collision") {
		t.Errorf("missing problem line in %q", out)
	}
	if !strings.Contains(out, "→ enable prefix mode") {
		t.Errorf("missing hint in %q", out)
	}
}

func TestFormatSuggestions(t *testing.T) {
	out := Format(Message{Problem: "class not found: Dgo", Suggestions: []string{"Dog"}, NoColor: true})
	if !strings.Contains(out, "Did you mean: Dog?") {
		t.Errorf("missing suggestion in %q", out)
	}
	if !strings.HasPrefix(Warning("careful", true), "! careful") {
		t.Errorf("unexpected warning %q", Warning("careful", true))
	}
	if Success("done", true) != "✓ done" {
		t.Errorf("unexpected success %q", Success("done", true))
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"Person", "Dog", "Animal", "Dogma"}

	got := FindSimilar("dgo", candidates, 2)
	if len(got) != 2 || got[0] != "Dog" || got[1] != "Dogma" {
		t.Errorf("FindSimilar() = %v", got)
	}
	if got := FindSimilar("Zebra", candidates, 3); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"dog", "dog", 0},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
