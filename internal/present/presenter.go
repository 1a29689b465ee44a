package present

import (
	"context"
	"io"

	"github.com/mithrel/perktable/internal/present/format"
	"github.com/mithrel/perktable/internal/ui"
	"github.com/mithrel/perktable/pkg/api"
	"github.com/mithrel/perktable/pkg/table"
)

type Mode int

const (
	ModeMarkdown Mode = iota
	ModePretty
	ModeJSON
	ModeTUI
)

func (m Mode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	case ModeTUI:
		return "tui"
	default:
		return "markdown"
	}
}

type Options struct {
	Mode       Mode
	JSONIndent bool
	Style      string
	WordWrap   int
}

// ParseMode parses "markdown", "pretty", "json" or "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "markdown", "md":
		return ModeMarkdown, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModeMarkdown, false
	}
}

// RenderTable writes the built entries in the requested mode.
func RenderTable(ctx context.Context, w io.Writer, cols api.ColumnMapping, entries []table.Entry, opts Options) error {
	switch opts.Mode {
	case ModePretty:
		return format.WritePrettyTable(w, cols, entries, opts.Style, opts.WordWrap)
	case ModeJSON:
		return format.WriteJSONEntries(w, entries, opts.JSONIndent)
	case ModeTUI:
		return ui.RenderRowsTable(ctx, cols, entries)
	default:
		return format.WriteMarkdownTable(w, cols, entries)
	}
}
