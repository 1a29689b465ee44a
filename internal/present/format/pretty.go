package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/perktable/pkg/api"
	"github.com/mithrel/perktable/pkg/table"
)

// DefaultWordWrap is used when no positive width is configured.
const DefaultWordWrap = 120

// WritePrettyTable renders the table for a terminal with glamour. The HTML
// used in README cells means nothing there, so cells are written as plain
// text: lists joined with "; " and links shown as text only.
func WritePrettyTable(w io.Writer, cols api.ColumnMapping, entries []table.Entry, style string, wrap int) error {
	if style == "" {
		style = "dark"
	}
	if wrap <= 0 {
		wrap = DefaultWordWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(PlainMarkdown(cols, entries))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// PlainMarkdown is the table with every cell reduced to escaped plain text.
// Struck-out rows keep their strike-through.
func PlainMarkdown(cols api.ColumnMapping, entries []table.Entry) string {
	var b strings.Builder
	b.WriteString(table.RenderHeader(cols.Headers()))
	for _, e := range entries {
		strike := e.Meta.StrikeOut.Truthy()
		b.WriteString("\n|")
		for _, c := range e.Row.Cells {
			s := escapeCell(PlainText(c.Value))
			if strike && s != "" && c.Column != table.OfficePictureColumn {
				s = "~~" + s + "~~"
			}
			b.WriteString(" " + s + " |")
		}
	}
	return b.String() + "\n"
}

// PlainText renders a cell value for terminals.
func PlainText(v api.Value) string {
	switch v.Kind() {
	case api.KindBool:
		return api.FormatScalar(v.Bool())
	case api.KindTextList:
		return strings.Join(v.Items(), "; ")
	default:
		return v.Text()
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
