package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/pb/internal/model"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"

	clearScreen = "\033[H\033[2J"
)

// RuleWidth is the width of the horizontal rules between cards.
const RuleWidth = 41

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ClearScreen clears w when it is a terminal and does nothing otherwise, so
// piped or captured output stays readable.
func ClearScreen(w io.Writer) {
	if IsTerminal(w) {
		fmt.Fprint(w, clearScreen)
	}
}

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Rule returns a horizontal rule of RuleWidth dashes.
func Rule() string {
	return strings.Repeat("-", RuleWidth)
}

// RenderCard writes a multi-line description of a contact:
//
//	ID: 4821
//	Full name: Anna Lee
//	Organization: Acme
//	Work phone: 111
//	Personal phone: 222
func RenderCard(w io.Writer, e model.Entry) {
	c := e.Contact
	fmt.Fprintf(w, "%s %s\n", Gray("ID:"), e.ID)
	fmt.Fprintf(w, "%s %s\n", Gray("Full name:"), c.FullName())
	fmt.Fprintf(w, "%s %s\n", Gray(model.FieldOrganization.Label()+":"), c.Organization)
	fmt.Fprintf(w, "%s %s\n", Gray(model.FieldWorkNumber.Label()+":"), c.WorkNumber)
	fmt.Fprintf(w, "%s %s\n", Gray(model.FieldPersonalNumber.Label()+":"), c.PersonalNumber)
}

// RenderCards writes each entry as a card, separated by rules.
func RenderCards(w io.Writer, entries []model.Entry) {
	for _, e := range entries {
		RenderCard(w, e)
		fmt.Fprintln(w, Rule())
	}
}

// DefaultMaxCellWidth is the default maximum visible width for text columns.
const DefaultMaxCellWidth = 30

// ContactTable builds a table of entries with a header row.
func ContactTable(entries []model.Entry) *Table {
	table := NewTable()
	for col := 1; col <= 4; col++ {
		table.SetMaxWidth(col, DefaultMaxCellWidth)
	}
	table.AddRow(Gray("ID"), Gray("NAME"), Gray("ORGANIZATION"), Gray("WORK"), Gray("PERSONAL"))
	for _, e := range entries {
		c := e.Contact
		table.AddRow(string(e.ID), c.FullName(), c.Organization, c.WorkNumber, c.PersonalNumber)
	}
	return table
}

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}
	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
// Trailing empty cells produce no trailing whitespace.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var parts []string
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(row)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts = append(parts, col)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// Truncate returns s truncated to maxWidth visible characters. If s exceeds
// maxWidth, it is cut and "..." is appended (counted within the limit).
// ANSI escape codes are preserved up to the cut with a reset appended.
// Below 4 columns there is no room for an ellipsis and s is hard-cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	limit, suffix := maxWidth-len(ellipsis), ellipsis
	if maxWidth < len(ellipsis) {
		limit, suffix = maxWidth, ""
	}

	var b strings.Builder
	visible := 0
	inEscape, hasAnsi := false, false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasAnsi = true, true
			b.WriteRune(r)
		case inEscape:
			b.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		case visible < limit:
			b.WriteRune(r)
			visible++
		}
	}
	b.WriteString(suffix)
	if hasAnsi && suffix != "" {
		b.WriteString(colorReset)
	}
	return b.String()
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		width++
	}
	return width
}
