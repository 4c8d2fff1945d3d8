package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
)

func recommendationItems() map[string]any {
	return map[string]any{
		"profile_id": 1,
		"items": []map[string]any{
			{"id": 10, "title": "Go Developer", "final_score": 0.91, "verdict": "strong"},
			{"id": 11, "title": "PHP Developer", "final_score": 0.42, "verdict": "weak"},
			{"id": 12, "title": "1C Developer", "final_score": 0.05, "verdict": "Reject"},
		},
	}
}

func visibleIDs(t *testing.T, page *RecommendationsPage) []int {
	t.Helper()
	var ids []int
	for _, r := range page.Visible() {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRecommendationsPage_UsesStoredLimit(t *testing.T) {
	b, server := newBackend(t)
	b.json("GET /api/v1/profiles/1/recommendations?limit=120", http.StatusOK, recommendationItems())

	s := settings.Defaults()
	s.RecommendationsLimit = 120
	page := NewRecommendationsPage(testDeps(t, server, storeWith(t, s)))
	page.Load(context.Background())

	snap := page.Snapshot()
	require.Empty(t, snap.Items.Error)
	assert.Len(t, snap.Items.Data, 3)
	assert.Equal(t, 120, snap.Settings.RecommendationsLimit)
	assert.Equal(t, 1, b.count("GET /api/v1/profiles/1/recommendations?limit=120"))
}

func TestRecommendationsPage_VerdictFiltering(t *testing.T) {
	tests := []struct {
		name        string
		storedHide  bool
		localHide   bool
		hideWeak    bool
		wantVisible []int
	}{
		{name: "both hide flags on", storedHide: true, localHide: true, wantVisible: []int{10, 11}},
		{name: "local toggle off", storedHide: true, localHide: false, wantVisible: []int{10, 11, 12}},
		{name: "stored setting off", storedHide: false, localHide: true, wantVisible: []int{10, 11, 12}},
		{name: "hide weak only", storedHide: false, localHide: true, hideWeak: true, wantVisible: []int{10, 12}},
		{name: "hide weak and reject", storedHide: true, localHide: true, hideWeak: true, wantVisible: []int{10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, server := newBackend(t)
			b.json("GET /api/v1/profiles/1/recommendations?limit=50", http.StatusOK, recommendationItems())

			s := settings.Defaults()
			s.HideReject = tt.storedHide
			page := NewRecommendationsPage(testDeps(t, server, storeWith(t, s)))
			page.Load(context.Background())

			page.SetHideReject(tt.localHide)
			page.SetHideWeak(tt.hideWeak)
			assert.Equal(t, tt.wantVisible, visibleIDs(t, page))
			assert.Len(t, page.Snapshot().Items.Data, 3)
		})
	}
}

func TestRecommendationsPage_EmptyIsNotError(t *testing.T) {
	b, server := newBackend(t)
	b.json("GET /api/v1/profiles/1/recommendations?limit=50", http.StatusOK, map[string]any{"profile_id": 1, "items": []any{}})

	page := NewRecommendationsPage(testDeps(t, server, nil))
	page.Load(context.Background())

	snap := page.Snapshot()
	assert.Empty(t, snap.Items.Error)
	assert.True(t, snap.Items.Loaded)
	assert.Empty(t, snap.Visible)
}

func TestRecommendationsPage_RecomputeReloads(t *testing.T) {
	b, server := newBackend(t)
	b.json("GET /api/v1/profiles/1/recommendations?limit=50", http.StatusOK, recommendationItems())
	b.json("POST /api/v1/profiles/1/recommendations/recompute?limit=50", http.StatusAccepted, map[string]string{"task_id": "rc-1"})
	b.taskSequence("rc-1", pending(), success())

	page := NewRecommendationsPage(testDeps(t, server, nil))
	page.Load(context.Background())
	require.NoError(t, page.Recompute(context.Background()))

	_, err := page.WaitTask(waitCtx(t))
	require.NoError(t, err)

	snap := page.Snapshot()
	assert.Equal(t, tasks.PhaseSuccess, snap.Recompute.Phase)
	assert.Equal(t, "Recommendations updated", snap.Recompute.Message)
	assert.Equal(t, 2, b.count("GET /api/v1/profiles/1/recommendations?limit=50"))
}

func TestRecommendationsPage_RecomputeEnqueueError(t *testing.T) {
	b, server := newBackend(t)
	b.json("POST /api/v1/profiles/1/recommendations/recompute?limit=50", http.StatusServiceUnavailable, map[string]string{"detail": "broker offline"})

	page := NewRecommendationsPage(testDeps(t, server, nil))
	require.Error(t, page.Recompute(context.Background()))

	snap := page.Snapshot()
	assert.Contains(t, snap.RecomputeError, "broker offline")
	assert.False(t, snap.Recompute.Running())
}
