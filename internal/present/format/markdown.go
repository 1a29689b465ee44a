package format

import (
	"io"

	"github.com/mithrel/perktable/pkg/api"
	"github.com/mithrel/perktable/pkg/table"
)

// WriteMarkdownTable writes the README table exactly as it is spliced.
func WriteMarkdownTable(w io.Writer, cols api.ColumnMapping, entries []table.Entry) error {
	_, err := io.WriteString(w, table.RenderEntries(cols, entries)+"\n")
	return err
}
