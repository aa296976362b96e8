package pipeline

import (
	"slices"

	"github.com/ademuri/discogs-eda/internal/release"
)

// KeyCount is a category and how many rows carry it.
type KeyCount struct {
	Key   string
	Count int
}

// TopK returns the k most frequent values of f, most frequent first. Ties
// keep the order in which values first appear in rows. k <= 0 returns every
// value. Empty values are not counted.
func TopK(rows []Row, f release.Field, k int) ([]KeyCount, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	index := make(map[string]int)
	var counts []KeyCount
	for _, r := range rows {
		v := r.Text(f)
		if v == "" {
			continue
		}
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, KeyCount{Key: v})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b KeyCount) int { return b.Count - a.Count })
	if k > 0 && len(counts) > k {
		counts = counts[:k]
	}
	return counts, nil
}

// Keys returns the keys of a selection in rank order.
func Keys(sel []KeyCount) []string {
	keys := make([]string, len(sel))
	for i, kc := range sel {
		keys[i] = kc.Key
	}
	return keys
}

// KeySet returns the keys of a selection as a set, for use with In.
func KeySet(sel []KeyCount) map[string]bool {
	set := make(map[string]bool, len(sel))
	for _, kc := range sel {
		set[kc.Key] = true
	}
	return set
}
