package readme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/perktable/pkg/api"
	"github.com/mithrel/perktable/pkg/table"
)

const (
	start = "<!-- perktable:start -->"
	end   = "<!-- perktable:end -->"
)

func TestSpliceReplacesSection(t *testing.T) {
	doc := "# Companies\n\nintro\n" + start + "\nold table\n" + end + "\n\nfooter\n"

	out, err := Splice(doc, "| A |\n|---|\n", start, end)
	require.NoError(t, err)
	assert.Equal(t, "# Companies\n\nintro\n"+start+"\n| A |\n|---|\n"+end+"\n\nfooter\n", out)

	got, err := Extract(out, start, end)
	require.NoError(t, err)
	assert.Equal(t, "| A |\n|---|", got)

	again, err := Splice(out, "| A |\n|---|", start, end)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestSpliceEmptySection(t *testing.T) {
	out, err := Splice(start+end, "x", start, end)
	require.NoError(t, err)
	assert.Equal(t, start+"\nx\n"+end, out)
}

func TestMarkerErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"no start":  {doc: "text\n" + end, want: ErrMarkerMissing},
		"no end":    {doc: start + "\ntext", want: ErrMarkerMissing},
		"two start": {doc: start + start + end, want: ErrMarkerRepeated},
		"reversed":  {doc: end + "\n" + start, want: ErrMarkersReversed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Splice(tc.doc, "x", start, end)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsMarkerError(err))
			assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))

			_, err = Extract(tc.doc, start, end)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDigestNormalizes(t *testing.T) {
	a := Digest("| A |\n|---|\n| x |")
	assert.Len(t, a, 64)
	assert.Equal(t, a, Digest("\n| A |  \r\n|---|\r\n| x |\n\n"))
	assert.NotEqual(t, a, Digest("| A |\n|---|\n| y |"))
	assert.NotEqual(t, Digest("ab"), Digest("a\nb"))
}

func TestWriteSectionAndCompare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")

	changed, err := WriteSection(path, "Companies", "| A |\n|---|", start, end)
	require.NoError(t, err)
	assert.True(t, changed)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# Companies\n\n"+start+"\n| A |\n|---|\n"+end))

	require.NoError(t, Compare(path, "| A |\n|---|\n", start, end))

	changed, err = WriteSection(path, "Companies", "| A |\n|---|", start, end)
	require.NoError(t, err)
	assert.False(t, changed)

	err = Compare(path, "| B |\n|---|", start, end)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStale)

	changed, err = WriteSection(path, "Companies", "| B |\n|---|", start, end)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NoError(t, Compare(path, "| B |\n|---|", start, end))
}

func TestWriteSectionKeepsFileOnMarkerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# no markers\n"), 0o600))

	_, err := WriteSection(path, "Companies", "| A |", start, end)
	assert.ErrorIs(t, err, ErrMarkerMissing)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# no markers\n", string(b))
}

func TestInspectGeneratedTable(t *testing.T) {
	cols := api.ColumnMapping{
		{ID: "key", Title: "Company"},
		{ID: "remote", Title: "Remote"},
		{ID: "benefits", Title: "Benefits"},
		{ID: "office_picture", Title: "Office"},
	}
	recs := []api.Keyed{
		{Key: "Acme", Record: api.Record{
			"career_page":    "https://acme.example/jobs",
			"remote":         true,
			"benefits":       map[string]any{"good_insurance": true, "maternity_leaves": 4},
			"office_picture": "https://img/acme.png",
		}},
		{Key: "Globex", Record: api.Record{"strike_out": true}},
	}
	section, err := table.Render(cols, recs)
	require.NoError(t, err)

	shape, err := Inspect(section)
	require.NoError(t, err)
	assert.Equal(t, 1, shape.Tables)
	assert.Equal(t, []string{"Company", "Remote", "Benefits", "Office"}, shape.Headers)
	assert.Equal(t, 2, shape.Rows)

	require.NoError(t, Verify(section, cols.Headers(), len(recs)))
}

func TestVerifyRejectsBrokenTables(t *testing.T) {
	err := Verify("just text", []string{"A"}, 0)
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))

	// separator narrower than the header row is not a table at all
	assert.Error(t, Verify("| A | B |\n|---|\n| x | y |", []string{"A", "B"}, 1))

	assert.Error(t, Verify("| A | B |\n|---|---|\n| x | y |", []string{"A", "C"}, 1))
	assert.Error(t, Verify("| A | B |\n|---|---|\n| x | y |\n| z | w |", []string{"A", "B"}, 1))
	assert.NoError(t, Verify("| A | B |\n|---|---|\n| x | y |", []string{"A", "B"}, 1))
}
