package table

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mithrel/perktable/pkg/api"
)

// OfficePictureColumn renders as an embedded image and is never struck out.
const OfficePictureColumn = "office_picture"

// RenderHeader renders the title line and the separator line of a table.
// Each separator cell is two dashes wider than its title to cover the
// padding spaces around it.
func RenderHeader(headers []string) string {
	titles := "| " + strings.Join(headers, " | ") + " |"
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", utf8.RuneCountInString(h)+2)
	}
	return titles + "\n" + "|" + strings.Join(dashes, "|") + "|"
}

// RenderRow renders one table line from a built row and its metadata.
func RenderRow(row api.Row, md api.Metadata) string {
	strike := md.StrikeOut.Truthy()

	var b strings.Builder
	b.WriteString("|")
	for _, c := range row.Cells {
		b.WriteString(" ")
		b.WriteString(renderCell(c, row, md, strike))
		b.WriteString(" |")
	}
	return b.String()
}

func renderCell(c api.Cell, row api.Row, md api.Metadata, strike bool) string {
	v := c.Value
	if v.Kind() == api.KindBool {
		v = api.Text(yesNo(v.Bool()))
	}
	if strike && c.Column != OfficePictureColumn {
		v = strikeThrough(v)
	}

	if field, ok := LinkField(c.Column); ok {
		return fmt.Sprintf("[%s](%s)", v.Text(), MetadataField(md, field).Text())
	}
	switch {
	case c.Column == OfficePictureColumn:
		return fmt.Sprintf(`<img src="%s" alt="%s Office" height="250" width="400" >`, v.Text(), rowKey(row))
	case c.Column == BenefitsColumn || v.Kind() == api.KindTextList:
		return bulletList(listItems(v))
	default:
		return v.Text()
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func strikeThrough(v api.Value) api.Value {
	wrap := func(s string) string {
		if s == "" {
			return s
		}
		return "~~" + s + "~~"
	}
	switch v.Kind() {
	case api.KindText:
		return api.Text(wrap(v.Text()))
	case api.KindTextList:
		items := v.Items()
		for i := range items {
			items[i] = wrap(items[i])
		}
		return api.TextList(items)
	default:
		return v
	}
}

func listItems(v api.Value) []string {
	switch v.Kind() {
	case api.KindTextList:
		return v.Items()
	case api.KindText:
		return []string{v.Text()}
	default:
		return nil
	}
}

func bulletList(items []string) string {
	li := make([]string, len(items))
	for i, it := range items {
		li[i] = "<li> " + it + " </li>"
	}
	return "<ul> " + strings.Join(li, " ") + " </ul>"
}

// rowKey prefers a rendered key column over the key the row was built for.
func rowKey(row api.Row) string {
	if v := row.Get(KeyField); !v.IsAbsent() {
		return v.Text()
	}
	return row.Key
}

// Entry is one built row with the metadata that steers its rendering.
type Entry struct {
	Row  api.Row      `json:"row"`
	Meta api.Metadata `json:"metadata"`
}

// BuildRows builds an entry per record, preserving record order.
func BuildRows(cols api.ColumnMapping, records []api.Keyed) ([]Entry, error) {
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		row, md, err := BuildRow(r.Key, r.Record, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Row: row, Meta: md})
	}
	return out, nil
}

// Render renders the whole table: header, separator and one line per record.
func Render(cols api.ColumnMapping, records []api.Keyed) (string, error) {
	if err := CheckColumns(cols); err != nil {
		return "", err
	}
	entries, err := BuildRows(cols, records)
	if err != nil {
		return "", err
	}
	return RenderEntries(cols, entries), nil
}

// RenderEntries renders already built entries under the headers of cols.
func RenderEntries(cols api.ColumnMapping, entries []Entry) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, RenderHeader(cols.Headers()))
	for _, e := range entries {
		lines = append(lines, RenderRow(e.Row, e.Meta))
	}
	return strings.Join(lines, "\n")
}
