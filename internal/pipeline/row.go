// Package pipeline turns release records into the tables charts consume:
// style explosion, grouping, top-k selection and pivot/melt reshaping.
//
// Every stage is a pure function over complete in-memory tables. Inputs are
// never modified.
package pipeline

import (
	"github.com/ademuri/discogs-eda/internal/release"
)

// Row is a release as seen by the pipeline. Style is set only on rows
// produced by Explode.
type Row struct {
	*release.Release
	Style string
}

// Text returns the categorical value of f, including the exploded style.
func (r Row) Text(f release.Field) string {
	if f == release.Style {
		return r.Style
	}
	return r.Release.Text(f)
}

// Rows wraps releases without exploding styles.
func Rows(releases []release.Release) []Row {
	rows := make([]Row, len(releases))
	for i := range releases {
		rows[i] = Row{Release: &releases[i]}
	}
	return rows
}

// Explode returns one row per style token of each release. Releases without
// styles produce no rows, so the result has exactly as many rows as there
// are tokens in total.
func Explode(releases []release.Release) []Row {
	return ExplodeRows(Rows(releases))
}

// ExplodeRows is Explode for rows that were already filtered.
func ExplodeRows(rows []Row) []Row {
	var out []Row
	for _, r := range rows {
		for _, style := range r.StyleTokens() {
			out = append(out, Row{Release: r.Release, Style: style})
		}
	}
	return out
}

// Where returns the rows for which keep is true.
func Where(rows []Row, keep func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Equals matches rows whose f has the given value.
func Equals(f release.Field, value string) func(Row) bool {
	return func(r Row) bool { return r.Text(f) == value }
}

// NotEquals matches rows whose f differs from value.
func NotEquals(f release.Field, value string) func(Row) bool {
	return func(r Row) bool { return r.Text(f) != value }
}

// In matches rows whose f is in keys.
func In(f release.Field, keys map[string]bool) func(Row) bool {
	return func(r Row) bool { return keys[r.Text(f)] }
}

// YearAtMost matches rows released in or before year.
func YearAtMost(year int) func(Row) bool {
	return func(r Row) bool { return r.ReleaseYear <= year }
}

// All combines predicates.
func All(preds ...func(Row) bool) func(Row) bool {
	return func(r Row) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
