package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/perktable/pkg/api"
	"github.com/mithrel/perktable/pkg/table"
)

var cols = api.ColumnMapping{
	{ID: "key", Title: "Company"},
	{ID: "remote", Title: "Remote"},
	{ID: "tags", Title: "Tags"},
}

func entries(t *testing.T) []table.Entry {
	t.Helper()
	out, err := table.BuildRows(cols, []api.Keyed{
		{Key: "Acme", Record: api.Record{"career_page": "http://acme", "remote": true, "tags": []any{"go", "a|b"}}},
		{Key: "Globex", Record: api.Record{"strike_out": true}},
	})
	require.NoError(t, err)
	return out
}

func TestWriteMarkdownTable(t *testing.T) {
	es := entries(t)
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdownTable(&buf, cols, es))
	assert.Equal(t, table.RenderEntries(cols, es)+"\n", buf.String())
}

func TestWriteJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONEntries(&buf, entries(t), true))

	var got []struct {
		Row struct {
			Key   string `json:"key"`
			Cells []struct {
				Column string `json:"column"`
				Value  any    `json:"value"`
			} `json:"cells"`
		} `json:"row"`
		Meta map[string]any `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Row.Key)
	require.Len(t, got[0].Row.Cells, 3)
	assert.Equal(t, "key", got[0].Row.Cells[0].Column)
	assert.Equal(t, "Acme", got[0].Row.Cells[0].Value)
	assert.Equal(t, true, got[0].Row.Cells[1].Value)
	assert.Equal(t, []any{"go", "a|b"}, got[0].Row.Cells[2].Value)
	assert.Equal(t, "http://acme", got[0].Meta["career_page"])
	assert.Nil(t, got[1].Row.Cells[1].Value)
	assert.Equal(t, true, got[1].Meta["strike_out"])
}

func TestWriteJSONEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONEntries(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPlainMarkdown(t *testing.T) {
	got := PlainMarkdown(cols, entries(t))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Company | Remote | Tags |", lines[0])
	assert.Equal(t, `| Acme | Yes | go; a\|b |`, lines[2])
	assert.Equal(t, "| ~~Globex~~ |  |  |", lines[3])
}

func TestWritePrettyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrettyTable(&buf, cols, entries(t), "notty", 0))
	assert.Contains(t, buf.String(), "Acme")
	assert.Contains(t, buf.String(), "Company")
}
