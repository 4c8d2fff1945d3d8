// Package filter narrows vacancy and recommendation lists for display.
// Every function is pure and never modifies its input. When there is nothing
// to filter out the input slice itself is returned.
package filter

import (
	"strings"

	"github.com/jonathan/jobsearch-console/internal/types"
)

// Vacancies keeps vacancies whose title, company or location contains query,
// ignoring case. A blank query keeps everything.
func Vacancies(items []types.Vacancy, query string) []types.Vacancy {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items
	}

	out := make([]types.Vacancy, 0, len(items))
	for _, v := range items {
		if matches(needle, v.Title, v.Company(), v.Place()) {
			out = append(out, v)
		}
	}
	return out
}

func matches(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Criteria select which verdicts are hidden.
type Criteria struct {
	HideReject bool
	HideWeak   bool
}

// Recommendations drops items whose verdict is hidden by c.
func Recommendations(items []types.Recommendation, c Criteria) []types.Recommendation {
	if !c.HideReject && !c.HideWeak {
		return items
	}

	out := make([]types.Recommendation, 0, len(items))
	for _, r := range items {
		if c.HideReject && r.HasVerdict(types.VerdictReject) {
			continue
		}
		if c.HideWeak && r.HasVerdict(types.VerdictWeak) {
			continue
		}
		out = append(out, r)
	}
	return out
}
