package api

import (
	"fmt"
	"strings"
)

// Record is one company's nested profile as decoded from YAML or JSON.
type Record map[string]any

// WithKey returns a shallow copy of r carrying key under the "key" field.
// The receiver is left untouched.
func (r Record) WithKey(key string) Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out["key"] = key
	return out
}

// Keyed pairs a record with the key it is published under.
type Keyed struct {
	Key    string `json:"key"`
	Record Record `json:"record"`
}

// Column is one entry of a ColumnMapping. ID is the lookup path, Title the
// header text.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Header returns Title, falling back to ID.
func (c Column) Header() string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return c.ID
}

// ColumnMapping is the ordered column set of a table.
type ColumnMapping []Column

// Headers returns the header titles in order.
func (m ColumnMapping) Headers() []string {
	out := make([]string, len(m))
	for i, c := range m {
		out[i] = c.Header()
	}
	return out
}

// IDs returns the column identifiers in order.
func (m ColumnMapping) IDs() []string {
	out := make([]string, len(m))
	for i, c := range m {
		out[i] = c.ID
	}
	return out
}

// ParseColumn parses "id" or "id:Title".
func ParseColumn(spec string) (Column, error) {
	id, title, _ := strings.Cut(spec, ":")
	id = strings.TrimSpace(id)
	if id == "" {
		return Column{}, fmt.Errorf("column %q: empty identifier", spec)
	}
	return Column{ID: id, Title: strings.TrimSpace(title)}, nil
}

// ParseColumns parses specs in order, rejecting duplicate identifiers.
func ParseColumns(specs []string) (ColumnMapping, error) {
	out := make(ColumnMapping, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		c, err := ParseColumn(s)
		if err != nil {
			return nil, err
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("column %q listed twice", c.ID)
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, nil
}

// Cell is one column of a Row.
type Cell struct {
	Column string `json:"column"`
	Value  Value  `json:"value"`
}

// Row is the ordered set of extracted values for one record.
type Row struct {
	Key   string `json:"key"`
	Cells []Cell `json:"cells"`
}

// Get returns the value of column id, Absent when the row has no such column.
func (r Row) Get(id string) Value {
	for _, c := range r.Cells {
		if c.Column == id {
			return c.Value
		}
	}
	return Absent()
}

// Metadata steers rendering of a row. It is never rendered as a column.
type Metadata struct {
	CareerPage           Value `json:"career_page"`
	StrikeOut            Value `json:"strike_out"`
	GlassdoorLink        Value `json:"glassdoor__link"`
	SoftwareEngineerLink Value `json:"software_engineer__link"`
}
