package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-console/internal/editor"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

func ptr[T any](v T) *T { return &v }

func newTestPrinter() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf), &buf
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	p, buf := newTestPrinter()
	p.printBox("ВАКАНСИИ", "Разработчик Go в команду платежей, удалённая работа, гибкий график и много других слов")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 4)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrap("abcdefghij", 4))
	assert.Equal(t, []string{"a", "", "b"}, wrap("a\n\nb", 10))
	assert.Equal(t, []string{"  • one", "  two"}, wrap("  • one two", 7))
}

func TestPrintVacancies_States(t *testing.T) {
	isLoading := pages.VacanciesSnapshot{}
	failed := pages.VacanciesSnapshot{Vacancies: pages.Resource[[]types.Vacancy]{Loaded: true, Error: "API request failed (500 Internal Server Error)"}}
	empty := pages.VacanciesSnapshot{Vacancies: pages.Resource[[]types.Vacancy]{Loaded: true}}
	noMatch := pages.VacanciesSnapshot{
		Vacancies: pages.Resource[[]types.Vacancy]{Loaded: true, Data: []types.Vacancy{{ID: 1, Title: "Go"}}},
		Query:     "rust",
	}

	tests := []struct {
		name string
		snap pages.VacanciesSnapshot
		want string
	}{
		{name: "loading", snap: isLoading, want: loadingText},
		{name: "error", snap: failed, want: "⚠ API request failed"},
		{name: "empty", snap: empty, want: "No vacancies yet"},
		{name: "no match", snap: noMatch, want: "Nothing matches the search."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newTestPrinter()
			p.PrintVacancies(tt.snap)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintVacancies_List(t *testing.T) {
	p, buf := newTestPrinter()
	items := []types.Vacancy{
		{ID: 7, Title: "Go Developer", CompanyName: ptr("Avito"), SalaryFrom: ptr(200000), Currency: ptr("RUB")},
		{ID: 8, Title: "SRE"},
	}
	p.PrintVacancies(pages.VacanciesSnapshot{
		Vacancies: pages.Resource[[]types.Vacancy]{Loaded: true, Data: items},
		Visible:   items,
		Import:    pages.TaskState{ID: "imp-1", Phase: tasks.PhaseSuccess, Message: "Import finished"},
	})

	out := buf.String()
	assert.Contains(t, out, "✓ imp-1: Import finished")
	assert.Contains(t, out, "Showing 2 of 2")
	assert.Contains(t, out, "#7  Go Developer")
	assert.Contains(t, out, "Avito · —")
	assert.Contains(t, out, "from 200000 RUB")
	assert.Contains(t, out, "Salary not specified")
}

func TestPrintVacancyDetails(t *testing.T) {
	var tl types.Tailoring
	require.NoError(t, json.Unmarshal([]byte(`{"explanation":{"final":{"score":0.8123,"verdict":"strong"},"keywords_to_add":["gRPC"]},"evidence":[{"text":"Go 5 years","confidence":0.9}]}`), &tl))

	snap := pages.DetailsSnapshot{
		Vacancy:   pages.Resource[*types.Vacancy]{Loaded: true, Error: "API request failed (404 Not Found): Vacancy not found"},
		Tailoring: pages.Resource[*types.Tailoring]{Loaded: true, Data: &tl},
		View:      pages.NewTailoringView(&tl),
	}

	p, buf := newTestPrinter()
	p.PrintVacancyDetails(snap)

	out := buf.String()
	assert.Contains(t, out, "Vacancy not found")
	assert.Contains(t, out, "Score:   0.81")
	assert.Contains(t, out, "Verdict: strong")
	assert.Contains(t, out, "• gRPC")
	assert.Contains(t, out, "Go 5 years (0.90)")
	assert.NotContains(t, out, "DOCUMENT")
}

func TestPrintVacancyDetails_DescriptionAndRaw(t *testing.T) {
	var tl types.Tailoring
	require.NoError(t, json.Unmarshal([]byte(`{"explanation":{"notes":"custom"}}`), &tl))

	snap := pages.DetailsSnapshot{
		Vacancy: pages.Resource[*types.Vacancy]{Loaded: true, Data: &types.Vacancy{
			ID: 3, Title: "Go Developer", Status: "open",
			Description: ptr("<p>We build <b>payments</b></p><ul><li>Go</li></ul>"),
		}},
		Tailoring: pages.Resource[*types.Tailoring]{Loaded: true, Data: &tl},
		View:      pages.NewTailoringView(&tl),
		Document: pages.Resource[*types.DocumentByTask]{Loaded: true, Data: &types.DocumentByTask{
			TaskID:        "gen-1",
			ResumeVersion: &types.ResumeVersion{ID: 9, ContentText: "Tailored resume", Status: "draft"},
		}},
	}

	p, buf := newTestPrinter()
	p.PrintVacancyDetails(snap)

	out := buf.String()
	assert.Contains(t, out, "#3  Go Developer")
	assert.Contains(t, out, "We build payments")
	assert.Contains(t, out, "• Go")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, `"notes": "custom"`)
	assert.Contains(t, out, "RESUME VERSION #9 (draft)")
	assert.Contains(t, out, "Tailored resume")
}

func TestPrintRecommendations(t *testing.T) {
	items := []types.Recommendation{
		{ID: 1, Title: "Go Developer", FinalScore: 0.9, Verdict: "strong"},
		{ID: 2, Title: "1C Developer", FinalScore: 0.1, Verdict: "reject"},
	}

	p, buf := newTestPrinter()
	p.PrintRecommendations(pages.RecommendationsSnapshot{
		Items:    pages.Resource[[]types.Recommendation]{Loaded: true, Data: items},
		Visible:  items[:1],
		Settings: settings.Defaults(),
	})

	out := buf.String()
	assert.Contains(t, out, "RECOMMENDATIONS (limit 50)")
	assert.Contains(t, out, "Showing 1 of 2 (1 hidden by verdict)")
	assert.Contains(t, out, "Score 0.90 · strong")
	assert.NotContains(t, out, "1C Developer")
}

func TestPrintTask(t *testing.T) {
	p, buf := newTestPrinter()
	p.PrintTask("IMPORT", pages.TaskState{})
	assert.Empty(t, buf.String())

	p.PrintTask("IMPORT", pages.TaskState{ID: "t-1", Phase: tasks.PhaseFailure, Error: "hh.ru unavailable"})
	assert.Contains(t, buf.String(), "✗ t-1: hh.ru unavailable")

	buf.Reset()
	p.PrintTask("IMPORT", pages.TaskState{ID: "t-2", Phase: tasks.PhasePending, State: "STARTED"})
	assert.Contains(t, buf.String(), "… t-2 STARTED")
}

func TestPrintRecords(t *testing.T) {
	shape := editor.LanguageShape()

	p, buf := newTestPrinter()
	PrintRecords(p, "LANGUAGES", pages.Resource[[]types.Language]{Loaded: true}, shape)
	assert.Contains(t, buf.String(), "Nothing added yet.")

	buf.Reset()
	PrintRecords(p, "LANGUAGES", pages.Resource[[]types.Language]{Loaded: true, Data: []types.Language{
		{ID: 1, Language: "English", Level: "C1"},
		{ID: 2, Language: "German", Level: "A2"},
	}}, shape)
	out := buf.String()
	assert.Contains(t, out, "#1  English")
	assert.Contains(t, out, "    C1")
	assert.Contains(t, out, "#2  German")
}

func TestPrintProfile(t *testing.T) {
	prof := &types.Profile{
		ID:              1,
		Title:           ptr("Backend engineer"),
		ResumeText:      "Ten years of Go",
		RemoteOK:        true,
		PreferredTech:   []string{"Go", "Postgres"},
		TeamPreferences: json.RawMessage(`{"size":"small"}`),
	}

	p, buf := newTestPrinter()
	p.PrintProfile(pages.ProfileSnapshot{
		Profile:         pages.Resource[*types.Profile]{Loaded: true, Data: prof},
		Draft:           *prof,
		PreferencesText: "{\n  \"size\": \"small\"\n}",
		Notice:          "Profile saved",
	})

	out := buf.String()
	assert.Contains(t, out, "Profile saved")
	assert.Contains(t, out, "PROFILE #1")
	assert.Contains(t, out, "Title: Backend engineer")
	assert.Contains(t, out, "Preferred tech: Go, Postgres")
	assert.Contains(t, out, "Email: —")
	assert.Contains(t, out, "Ten years of Go")
	assert.Contains(t, out, `"size": "small"`)
}

func TestPrintSettings(t *testing.T) {
	p, buf := newTestPrinter()
	p.PrintSettings(pages.SettingsSnapshot{
		Saved:    settings.Defaults(),
		DevError: "API request failed (403 Forbidden)",
		TaskIDs:  map[string]string{"b": "2", "a": "1"},
	})

	out := buf.String()
	assert.Contains(t, out, "Recommendations limit:     50")
	assert.Contains(t, out, "Scoring mode:              Balanced")
	assert.Contains(t, out, "⚠ API request failed (403 Forbidden)")
	assert.Less(t, strings.Index(out, "a: 1"), strings.Index(out, "b: 2"))
}
