package cli

import (
	"strings"
	"unicode/utf8"
)

// columnGap separates table columns.
const columnGap = "  "

// Table formats rows into aligned columns under a header and a dashed
// separator. Widths are measured in runes so plugin descriptions and paths
// with non-ASCII text line up.
type Table struct {
	headers   []string
	rows      [][]string
	maxWidths map[int]int // Wrap width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps cells in column col at word boundaries so no line
// is wider than maxWidth.
func (t *Table) SetColumnMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row, padding or truncating it to the number of headers.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Render formats and returns the table. Trailing spaces are trimmed from
// every line.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// cells[row][col] holds the wrapped lines of one cell.
	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], utf8.RuneCountInString(line))
			}
		}
	}

	var b strings.Builder
	writeLine := func(parts []string) {
		for c, part := range parts {
			parts[c] = padRight(part, widths[c])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, columnGap), " "))
		b.WriteByte('\n')
	}

	writeLine(append([]string(nil), t.headers...))

	separator := make([]string, len(widths))
	for c, w := range widths {
		separator[c] = strings.Repeat("-", w)
	}
	writeLine(separator)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}

		for i := range height {
			parts := make([]string, len(row))
			for c, lines := range row {
				if i < len(lines) {
					parts[c] = lines[i]
				}
			}
			writeLine(parts)
		}
	}

	return b.String()
}

// padRight pads s with spaces to width runes. Longer strings are returned
// unchanged.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrapText wraps text to lines of at most width runes, breaking at spaces
// and splitting words that are longer than a line. A width of 0 disables
// wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		runes := []rune(word)
		for len(runes) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		word = string(runes)

		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
