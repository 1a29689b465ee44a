package table

import (
	"errors"
	"fmt"

	"github.com/mithrel/perktable/pkg/api"
)

// KeyField is the record field the publishing key is stored under.
const KeyField = "key"

var (
	ErrNilRecord   = errors.New("table: record is nil")
	ErrNoColumns   = errors.New("table: column mapping is empty")
	ErrBadColumnID = errors.New("table: invalid column identifier")
	ErrDupColumnID = errors.New("table: duplicate column identifier")
)

// BuildRow extracts the cells of rec for cols, in column order, together with
// the record's metadata. The key is injected into a copy of rec; the caller's
// record is not modified.
func BuildRow(key string, rec api.Record, cols api.ColumnMapping) (api.Row, api.Metadata, error) {
	if rec == nil {
		return api.Row{}, api.Metadata{}, fmt.Errorf("%w (key %q)", ErrNilRecord, key)
	}
	if err := CheckColumns(cols); err != nil {
		return api.Row{}, api.Metadata{}, err
	}

	keyed := rec.WithKey(key)
	row := api.Row{Key: key, Cells: make([]api.Cell, 0, len(cols))}
	for _, c := range cols {
		var v api.Value
		if c.ID == BenefitsColumn {
			v = api.TextList(TranslateBenefits(keyed[BenefitsColumn]))
		} else {
			v = api.FromAny(Resolve(c.ID, keyed))
		}
		row.Cells = append(row.Cells, api.Cell{Column: c.ID, Value: v})
	}
	return row, ExtractMetadata(keyed), nil
}

// CheckColumns rejects an empty mapping and empty or repeated identifiers.
func CheckColumns(cols api.ColumnMapping) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if c.ID == "" {
			return fmt.Errorf("%w: column %d is empty", ErrBadColumnID, i)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %q", ErrDupColumnID, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
