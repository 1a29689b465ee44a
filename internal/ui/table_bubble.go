package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/perktable/internal/present/format"
	"github.com/mithrel/perktable/pkg/api"
	ptable "github.com/mithrel/perktable/pkg/table"
)

const maxColumnWidth = 40

// RenderRowsTable opens an interactive Bubble Tea table to browse the
// generated rows.
func RenderRowsTable(ctx context.Context, cols api.ColumnMapping, entries []ptable.Entry) error {
	columns, rows := tableData(cols, entries)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(16, max(3, len(rows)+3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := model{table: t, empty: len(rows) == 0}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// tableData flattens entries into bubbles rows. Column widths fit the
// longest cell, capped at maxColumnWidth.
func tableData(cols api.ColumnMapping, entries []ptable.Entry) ([]table.Column, []table.Row) {
	columns := make([]table.Column, len(cols))
	for i, c := range cols {
		columns[i] = table.Column{Title: c.Header(), Width: runeLen(c.Header())}
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		row := make(table.Row, len(cols))
		for i := range cols {
			var text string
			if i < len(e.Row.Cells) {
				text = format.PlainText(e.Row.Cells[i].Value)
			}
			if e.Meta.StrikeOut.Truthy() && i == 0 {
				text = "✗ " + text
			}
			row[i] = truncate(text, maxColumnWidth)
			columns[i].Width = max(columns[i].Width, runeLen(row[i]))
		}
		rows = append(rows, row)
	}
	for i := range columns {
		columns[i].Width = min(columns[i].Width, maxColumnWidth)
	}
	return columns, rows
}

type model struct {
	table table.Model
	empty bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.empty {
		return "(no companies)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter/q to exit\n"
}

func runeLen(s string) int { return len([]rune(s)) }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
