package cli

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ansiPattern matches SGR escape sequences such as colour swatches.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stdoutIsTerminal reports whether stdout is attached to a terminal.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
}

// terminalWidth reports the width of stdout, or 0 when it is not a terminal.
var terminalWidth = func() int {
	if !stdoutIsTerminal() {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
	if err != nil {
		return 0
	}
	return w
}

// Table represents a simple table formatter with dynamic column widths.
// Widths ignore ANSI escapes so cells may carry colour swatches.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	maxWidths  map[int]int  // Maximum width per column index (0 = no limit)
	rightAlign map[int]bool // Columns padded on the left
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		rows:       make([][]string, 0),
		padding:    2, // 2 spaces between columns
		maxWidths:  make(map[int]int),
		rightAlign: make(map[int]bool),
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// SetRightAlign right-aligns a column, for numbers.
func (t *Table) SetRightAlign(colIndex int) {
	t.rightAlign[colIndex] = true
}

// EnableTerminalAwareWidth limits the last column so rows fit the terminal.
// The limit never drops below minWidth. It has no effect when stdout is not a
// terminal.
func (t *Table) EnableTerminalAwareWidth(minWidth int) {
	width := terminalWidth()
	if width <= 0 || len(t.headers) == 0 {
		return
	}

	last := len(t.headers) - 1
	used := 0
	for i := range last {
		used += t.columnWidth(i) + t.padding
	}
	t.SetColumnMaxWidth(last, max(width-used, minWidth))
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// columnWidth returns the natural width of a column, ignoring wrapping.
func (t *Table) columnWidth(i int) int {
	w := visibleLen(t.headers[i])
	for _, row := range t.rows {
		w = max(w, visibleLen(row[i]))
	}
	return w
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells that exceed max width.
	wrappedRows := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrappedRows[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth, hasLimit := t.maxWidths[colIdx]; hasLimit && maxWidth > 0 {
				wrappedRows[rowIdx][colIdx] = wrapText(cell, maxWidth)
			} else {
				wrappedRows[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = visibleLen(h)
	}
	for _, wrappedRow := range wrappedRows {
		for i, wrappedCell := range wrappedRow {
			for _, line := range wrappedCell {
				colWidths[i] = max(colWidths[i], visibleLen(line))
			}
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var result strings.Builder

	headerParts := make([]string, len(t.headers))
	sepParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = t.pad(i, h, colWidths[i])
		sepParts[i] = strings.Repeat("-", colWidths[i])
	}
	result.WriteString(strings.TrimRight(strings.Join(headerParts, sep), " "))
	result.WriteString("\n")
	result.WriteString(strings.Join(sepParts, sep))
	result.WriteString("\n")

	for _, wrappedRow := range wrappedRows {
		maxLines := 1
		for _, wrappedCell := range wrappedRow {
			maxLines = max(maxLines, len(wrappedCell))
		}

		for lineIdx := range maxLines {
			rowParts := make([]string, len(t.headers))
			for colIdx := range t.headers {
				cell := ""
				if lineIdx < len(wrappedRow[colIdx]) {
					cell = wrappedRow[colIdx][lineIdx]
				}
				rowParts[colIdx] = t.pad(colIdx, cell, colWidths[colIdx])
			}
			result.WriteString(strings.TrimRight(strings.Join(rowParts, sep), " "))
			result.WriteString("\n")
		}
	}

	return result.String()
}

func (t *Table) pad(colIdx int, s string, width int) string {
	if t.rightAlign[colIdx] {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

// visibleLen returns the printed width of s, ignoring ANSI escapes.
func visibleLen(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned unchanged.
func padRight(s string, width int) string {
	n := visibleLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft pads a string with spaces on the left to reach the desired width.
func padLeft(s string, width int) string {
	n := visibleLen(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// wrapText wraps text to fit within the specified width, breaking at word boundaries.
// Cells containing ANSI escapes are never wrapped.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleLen(text) <= width || ansiPattern.MatchString(text) {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		// If the word itself is longer than width, break it.
		if len(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			for len(word) > width {
				lines = append(lines, word[:width])
				word = word[width:]
			}
			currentLine = word
			continue
		}

		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if len(testLine) <= width {
			currentLine = testLine
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
