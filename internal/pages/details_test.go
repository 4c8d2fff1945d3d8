package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

const (
	vacancy7Route   = "GET /api/v1/vacancies/7"
	tailoring7Route = "GET /api/v1/profiles/1/vacancies/7/tailoring"
)

func TestDetailsPage_IndependentFailures(t *testing.T) {
	t.Run("vacancy missing, tailoring present", func(t *testing.T) {
		b, server := newBackend(t)
		b.json(vacancy7Route, http.StatusNotFound, map[string]string{"detail": "Vacancy not found"})
		b.json(tailoring7Route, http.StatusOK, map[string]any{
			"profile_id": 1, "vacancy_id": 7,
			"explanation": map[string]any{"final": map[string]any{"score": 0.82, "verdict": "strong"}},
		})

		page := NewVacancyDetailsPage(testDeps(t, server, nil))
		page.Load(context.Background(), 7)

		snap := page.Snapshot()
		assert.Contains(t, snap.Vacancy.Error, "Vacancy not found")
		assert.Empty(t, snap.Tailoring.Error)
		require.NotNil(t, snap.View.Score)
		assert.InDelta(t, 0.82, *snap.View.Score, 1e-9)
		assert.Equal(t, "strong", snap.View.Verdict)
	})

	t.Run("tailoring fails, vacancy present", func(t *testing.T) {
		b, server := newBackend(t)
		b.json(vacancy7Route, http.StatusOK, map[string]any{"id": 7, "source": "hh", "title": "Go Developer", "status": "open"})
		b.json(tailoring7Route, http.StatusInternalServerError, map[string]string{"detail": "scoring failed"})

		page := NewVacancyDetailsPage(testDeps(t, server, nil))
		page.Load(context.Background(), 7)

		snap := page.Snapshot()
		assert.Empty(t, snap.Vacancy.Error)
		require.NotNil(t, snap.Vacancy.Data)
		assert.Equal(t, "Go Developer", snap.Vacancy.Data.Title)
		assert.Contains(t, snap.Tailoring.Error, "scoring failed")
		assert.False(t, snap.View.HasSections())
	})
}

func TestDetailsPage_RefreshTailoringOnly(t *testing.T) {
	b, server := newBackend(t)
	b.json(vacancy7Route, http.StatusOK, map[string]any{"id": 7, "source": "hh", "title": "Go Developer", "status": "open"})
	b.json(tailoring7Route, http.StatusOK, map[string]any{"profile_id": 1, "vacancy_id": 7, "explanation": map[string]any{}})

	page := NewVacancyDetailsPage(testDeps(t, server, nil))
	page.Load(context.Background(), 7)
	page.RefreshTailoring(context.Background())

	assert.Equal(t, 1, b.count(vacancy7Route))
	assert.Equal(t, 2, b.count(tailoring7Route))
	assert.False(t, page.Snapshot().Refreshing)
}

func TestNewTailoringView_Layouts(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantScore    float64
		wantVerdict  string
		wantEvidence []string
	}{
		{
			name:         "nested final block with top-level evidence",
			body:         `{"explanation":{"final":{"score":0.7,"verdict":"strong"},"final_score":0.1},"evidence":[{"text":"Go 5y","confidence":0.9}]}`,
			wantScore:    0.7,
			wantVerdict:  "strong",
			wantEvidence: []string{"Go 5y"},
		},
		{
			name:         "flat score with evidence inside explanation",
			body:         `{"explanation":{"final_score":0.3,"verdict":"weak","evidence":[{"evidence_text":"Kafka"},"plain"]}}`,
			wantScore:    0.3,
			wantVerdict:  "weak",
			wantEvidence: []string{"Kafka", "plain"},
		},
		{
			name:         "null final falls back",
			body:         `{"explanation":{"final":null,"final_score":0.5,"verdict":"reject"},"evidence":null}`,
			wantScore:    0.5,
			wantVerdict:  "reject",
			wantEvidence: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tl types.Tailoring
			require.NoError(t, json.Unmarshal([]byte(tt.body), &tl))

			v := NewTailoringView(&tl)
			require.NotNil(t, v.Score)
			assert.InDelta(t, tt.wantScore, *v.Score, 1e-9)
			assert.Equal(t, tt.wantVerdict, v.Verdict)

			var texts []string
			for _, e := range v.Evidence {
				texts = append(texts, e.Text)
			}
			assert.Equal(t, tt.wantEvidence, texts)
			assert.True(t, v.HasSections())
		})
	}
}

func TestNewTailoringView_SectionsAndRaw(t *testing.T) {
	var tl types.Tailoring
	require.NoError(t, json.Unmarshal([]byte(`{
		"explanation": {
			"keywords_to_add": ["gRPC", "Kubernetes"],
			"missing_must_have": ["Kafka"],
			"missing_nice_to_have": [],
			"cover_letter_points": ["Led migration to Go"]
		},
		"evidence": [{"text": "Built payments", "confidence": 0.75}]
	}`), &tl))

	v := NewTailoringView(&tl)
	assert.Nil(t, v.Score)
	assert.Equal(t, []string{"gRPC", "Kubernetes"}, v.KeywordsToAdd)
	assert.Equal(t, []string{"Kafka"}, v.MissingMustHave)
	assert.Empty(t, v.MissingNiceToHave)
	assert.Equal(t, []string{"Led migration to Go"}, v.CoverLetterPoints)
	require.Len(t, v.Evidence, 1)
	require.NotNil(t, v.Evidence[0].Confidence)
	assert.InDelta(t, 0.75, *v.Evidence[0].Confidence, 1e-9)

	var unknown types.Tailoring
	require.NoError(t, json.Unmarshal([]byte(`{"explanation":{"something":"else"}}`), &unknown))
	raw := NewTailoringView(&unknown)
	assert.False(t, raw.HasSections())
	assert.Contains(t, raw.Raw, `"something": "else"`)

	assert.Equal(t, TailoringView{}, NewTailoringView(nil))
}

func TestDetailsPage_GenerateDocument(t *testing.T) {
	b, server := newBackend(t)
	b.json(vacancy7Route, http.StatusOK, map[string]any{"id": 7, "source": "hh", "title": "Go Developer", "status": "open"})
	b.json(tailoring7Route, http.StatusOK, map[string]any{"profile_id": 1, "vacancy_id": 7, "explanation": map[string]any{}})
	b.json("POST /api/v1/profiles/1/vacancies/7/cover-letter/generate", http.StatusAccepted, map[string]string{"task_id": "gen-1"})
	b.taskSequence("gen-1", pending(), success())
	b.json("GET /api/v1/profiles/1/documents/by-task/gen-1", http.StatusOK, map[string]any{
		"task_id": "gen-1", "state": "SUCCESS", "document_type": "cover_letter",
		"cover_letter_version": map[string]any{"id": 42, "content_text": "Dear team", "status": "draft"},
	})

	page := NewVacancyDetailsPage(testDeps(t, server, nil))
	page.Load(context.Background(), 7)
	require.NoError(t, page.GenerateDocument(context.Background(), DocumentCoverLetter))

	_, err := page.WaitTask(waitCtx(t))
	require.NoError(t, err)

	snap := page.Snapshot()
	assert.Equal(t, tasks.PhaseSuccess, snap.Generate.Phase)
	require.NotNil(t, snap.Document.Data)
	require.NotNil(t, snap.Document.Data.CoverLetterVersion)
	assert.Equal(t, 42, snap.Document.Data.CoverLetterVersion.ID)
	assert.Equal(t, 1, b.count("GET /api/v1/profiles/1/documents/by-task/gen-1"))
}

func TestDetailsPage_GenerateUnknownKind(t *testing.T) {
	b, server := newBackend(t)
	page := NewVacancyDetailsPage(testDeps(t, server, nil))

	err := page.GenerateDocument(context.Background(), "portfolio")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kind", verr.Field)
	assert.NotEmpty(t, page.Snapshot().GenerateError)
	assert.Equal(t, 0, b.total())
}
