package utils

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DateIndexFrame builds a single-column frame of date strings under indexCol.
func DateIndexFrame(indexCol string, dates []string) dataframe.DataFrame {
	return dataframe.New(series.New(dates, series.String, indexCol))
}

// UnionDateIndex returns the sorted union of indexCol values across frames.
// ISO dates sort lexically, so the result is chronological.
func UnionDateIndex(indexCol string, frames ...dataframe.DataFrame) []string {
	seen := map[string]bool{}
	for _, df := range frames {
		if df.Nrow() == 0 {
			continue
		}
		for _, v := range df.Col(indexCol).Records() {
			seen[v] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
