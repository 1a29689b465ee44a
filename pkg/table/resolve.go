// Package table turns company records into the rows of a Markdown table.
//
// Column identifiers address nested fields with a double-underscore path,
// so "glassdoor__rating" reads record["glassdoor"]["rating"]. The segment
// before the first separator is the column's namespace, which decides
// whether a cell is wrapped in a link taken from the record's metadata.
package table

import (
	"slices"
	"strings"

	"github.com/mithrel/perktable/pkg/api"
)

// Sep separates the segments of a column path.
const Sep = "__"

// Resolve looks path up in data. Segments are peeled from the right: a__b__c
// resolves as c inside (b inside a). A missing key, a non-mapping or an empty
// intermediate value anywhere along the way yields nil.
func Resolve(path string, data any) any {
	cur := data
	for _, seg := range SplitPath(path) {
		cur = lookup(seg, cur)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// SplitPath splits path into segments by repeatedly cutting at the last
// separator, so "a___b" yields ["a_", "b"].
func SplitPath(path string) []string {
	var segs []string
	for {
		i := strings.LastIndex(path, Sep)
		if i < 0 {
			break
		}
		segs = append(segs, path[i+len(Sep):])
		path = path[:i]
	}
	segs = append(segs, path)
	slices.Reverse(segs)
	return segs
}

// Namespace returns the segment of id before its first separator, or id
// itself when it has none.
func Namespace(id string) string {
	ns, _, _ := strings.Cut(id, Sep)
	return ns
}

func lookup(key string, data any) any {
	if key == "" || !truthy(data) {
		return nil
	}
	switch m := data.(type) {
	case api.Record:
		return m[key]
	case map[string]any:
		return m[key]
	case map[any]any:
		return m[key]
	default:
		return nil
	}
}

// truthy mirrors the loose truth test records are written against: nil,
// false, zero, "" and empty collections are all unset.
func truthy(x any) bool {
	switch t := x.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case api.Value:
		return t.Truthy()
	case api.Record:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case map[any]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	if f, ok := number(x); ok {
		return f != 0
	}
	return true
}

// number reports x as a float64 when it holds a numeric value. Bools count
// as 0 and 1 so a flag compared against a threshold behaves like a count.
func number(x any) (float64, bool) {
	switch n := x.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
