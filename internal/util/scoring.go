package util

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/mithrel/perktable/pkg/api"
)

// ScoreCompletions returns the top n fuzzy matches for input, best first.
// An empty input returns every candidate; n <= 0 means no limit.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

// FilterRecords keeps the records whose key fuzzy-matches query. Unlike
// ScoreCompletions the input order is preserved, so a filtered table is
// still sorted the way the full one is.
func FilterRecords(query string, recs []api.Keyed) []api.Keyed {
	if query == "" {
		return recs
	}
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = r.Key
	}
	matches := fuzzy.Find(query, keys)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	sort.Ints(idx)

	out := make([]api.Keyed, len(idx))
	for i, j := range idx {
		out[i] = recs[j]
	}
	return out
}
