package filter

import (
	"testing"

	"github.com/jonathan/jobsearch-console/internal/types"
	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func sampleVacancies() []types.Vacancy {
	return []types.Vacancy{
		{ID: 1, Title: "Senior Go Developer", CompanyName: str("Yandex"), Location: str("Moscow")},
		{ID: 2, Title: "Python Engineer", CompanyName: str("Ozon"), Location: str("Remote")},
		{ID: 3, Title: "Data Analyst", CompanyName: nil, Location: str("Saint Petersburg")},
		{ID: 4, Title: "Backend developer", CompanyName: str("GoTo Labs"), Location: nil},
	}
}

func ids(items []types.Vacancy) []int {
	out := make([]int, 0, len(items))
	for _, v := range items {
		out = append(out, v.ID)
	}
	return out
}

func TestVacancies(t *testing.T) {
	items := sampleVacancies()

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{1, 2, 3, 4}},
		{"   ", []int{1, 2, 3, 4}},
		{"go", []int{1, 4}},
		{"DEVELOPER", []int{1, 4}},
		{"remote", []int{2}},
		{"petersburg", []int{3}},
		{"kotlin", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Vacancies(items, tt.query)))
		})
	}
}

func TestVacancies_Idempotent(t *testing.T) {
	items := sampleVacancies()
	for _, q := range []string{"", "go", "o", "zzz"} {
		once := Vacancies(items, q)
		assert.Equal(t, once, Vacancies(once, q), q)
	}
}

func TestVacancies_DoesNotMutateInput(t *testing.T) {
	items := sampleVacancies()
	_ = Vacancies(items, "python")
	assert.Equal(t, []int{1, 2, 3, 4}, ids(items))
}

func TestNothingToFilterReturnsInput(t *testing.T) {
	vacancies := sampleVacancies()
	assert.Same(t, &vacancies[0], &Vacancies(vacancies, "  ")[0])

	recs := sampleRecommendations()
	assert.Same(t, &recs[0], &Recommendations(recs, Criteria{})[0])
}

func sampleRecommendations() []types.Recommendation {
	return []types.Recommendation{
		{ID: 1, Verdict: "strong"},
		{ID: 2, Verdict: "Reject"},
		{ID: 3, Verdict: "weak"},
		{ID: 4, Verdict: ""},
	}
}

func verdictIDs(rs []types.Recommendation) []int {
	out := []int{}
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestRecommendations(t *testing.T) {
	items := sampleRecommendations()

	assert.Equal(t, []int{1, 2, 3, 4}, verdictIDs(Recommendations(items, Criteria{})))
	assert.Equal(t, []int{1, 3, 4}, verdictIDs(Recommendations(items, Criteria{HideReject: true})))
	assert.Equal(t, []int{1, 2, 4}, verdictIDs(Recommendations(items, Criteria{HideWeak: true})))
	assert.Equal(t, []int{1, 4}, verdictIDs(Recommendations(items, Criteria{HideReject: true, HideWeak: true})))
}

func TestRecommendations_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []int
	}{
		{name: "no criteria", c: Criteria{}, want: []int{1, 2, 3, 4}},
		{name: "hide reject", c: Criteria{HideReject: true}, want: []int{1, 3, 4}},
		{name: "hide weak", c: Criteria{HideWeak: true}, want: []int{1, 2, 4}},
		{name: "hide both", c: Criteria{HideReject: true, HideWeak: true}, want: []int{1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Recommendations(sampleRecommendations(), tt.c)
			twice := Recommendations(once, tt.c)
			assert.Equal(t, tt.want, verdictIDs(once))
			assert.Equal(t, once, twice)
		})
	}
}
