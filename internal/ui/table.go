package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NothingFound is rendered in place of an empty table.
const NothingFound = "Found nothing."

// Alignment represents column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column defines one column of a Table.
type Column struct {
	Title string
	Align Alignment
	Style lipgloss.Style // applied to body cells
}

// Table renders result rows with a header and a minimal border.
type Table struct {
	display Display
	columns []Column
	rows    [][]string
}

// NewTable creates a table for the given columns.
func NewTable(display Display, columns ...Column) *Table {
	if display.Width <= 0 {
		display.Width = DefaultWidth
	}
	return &Table{display: display, columns: columns}
}

// AddRow adds a row; missing cells render empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of body rows.
func (t *Table) Len() int { return len(t.rows) }

// Render returns the table, or NothingFound when it has no rows. The table
// is narrowed to the terminal width when it would overflow; cells wrap.
func (t *Table) Render() string {
	if len(t.rows) == 0 {
		return NothingFound + "\n"
	}
	out := t.build().Render()
	if lipgloss.Width(out) > t.display.Width {
		out = t.build().Width(t.display.Width).Render()
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func (t *Table) build() *table.Table {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Title
	}

	return table.New().
		Border(lipgloss.Border{
			Top:    "─",
			Bottom: "─",
			Middle: "─",
		}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if col < len(t.columns) {
				if row == table.HeaderRow {
					style = Bold
				} else {
					style = t.columns[col].Style
				}
				if t.columns[col].Align == AlignRight {
					style = style.Align(lipgloss.Right)
				}
			}
			if col < len(t.columns)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Headers(headers...).
		Rows(t.rows...)
}
