package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/perktable/pkg/table"
)

// WriteJSONEntries writes the built rows with their metadata as one JSON
// array. Cells keep column order.
func WriteJSONEntries(w io.Writer, entries []table.Entry, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if entries == nil {
		entries = []table.Entry{}
	}
	return enc.Encode(entries)
}
