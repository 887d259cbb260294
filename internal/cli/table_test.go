package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"NAME", "STATUS"})

	table.AddRow([]string{"png", "enabled"})
	table.AddRow([]string{"svg"})
	table.AddRow([]string{"html", "disabled", "extra"})

	want := [][]string{
		{"png", "enabled"},
		{"svg", ""},
		{"html", "disabled"},
	}
	if !reflect.DeepEqual(table.rows, want) {
		t.Errorf("rows = %q, want %q", table.rows, want)
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"NAME", "SOURCE", "DESCRIPTION"})
	table.AddRow([]string{"png", "builtin", "Write the icon as a PNG image"})
	table.AddRow([]string{"ascii", "external", ""})

	want := "NAME   SOURCE    DESCRIPTION\n" +
		"-----  --------  -----------------------------\n" +
		"png    builtin   Write the icon as a PNG image\n" +
		"ascii  external\n"

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	got := NewTable([]string{"A", "B"}).Render()
	if got != "A  B\n-  -\n" {
		t.Errorf("Render() = %q, want header and separator only", got)
	}
}

func TestTableRenderWraps(t *testing.T) {
	table := NewTable([]string{"NAME", "DESCRIPTION"})
	table.SetColumnMaxWidth(1, 10)
	table.AddRow([]string{"html", "an HTML preview page"})

	want := "NAME  DESCRIPTION\n" +
		"----  -----------\n" +
		"html  an HTML\n" +
		"      preview\n" +
		"      page\n"

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderUnicode(t *testing.T) {
	table := NewTable([]string{"SEED", "N"})
	table.AddRow([]string{"héllo★", "1"})
	table.AddRow([]string{"ab", "2"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() produced %d lines, want 4", len(lines))
	}

	if lines[1] != "------  -" {
		t.Errorf("separator = %q, want width measured in runes", lines[1])
	}
	if lines[3] != "ab      2" {
		t.Errorf("row = %q, want %q", lines[3], "ab      2")
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"→", 3, "→  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "no limit", text: "a long line of text", width: 0, want: []string{"a long line of text"}},
		{name: "fits", text: "short", width: 10, want: []string{"short"}},
		{name: "words", text: "one two three", width: 7, want: []string{"one two", "three"}},
		{name: "long word", text: "abcdefghij xy", width: 4, want: []string{"abcd", "efgh", "ij", "xy"}},
		{name: "long word joins", text: "abcdef gh", width: 4, want: []string{"abcd", "ef", "gh"}},
		{name: "blank", text: "      ", width: 2, want: []string{"      "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
