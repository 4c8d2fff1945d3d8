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

func TestSettingsPage_SaveNormalizes(t *testing.T) {
	_, server := newBackend(t)
	store := settings.NewMemoryStore()
	page := NewSettingsPage(testDeps(t, server, store))
	page.Load(context.Background())

	page.Update(func(s *settings.Settings) {
		s.RecommendationsLimit = 5000
		s.ScoringMode = "aggressive"
		s.HideReject = false
	})
	saved, err := page.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, settings.MaxRecommendationsLimit, saved.RecommendationsLimit)
	assert.Equal(t, settings.ScoringBalanced, saved.ScoringMode)
	assert.False(t, saved.HideReject)

	snap := page.Snapshot()
	assert.Equal(t, saved, snap.Saved)
	assert.Equal(t, saved, snap.Draft)
	assert.Equal(t, "Settings saved", snap.Notice)

	reloaded := settings.NewService(store, nil).Load(context.Background())
	assert.Equal(t, saved, reloaded)
}

func TestSettingsPage_RecomputeAllFollowsLastTask(t *testing.T) {
	b, server := newBackend(t)
	b.json("POST /api/v1/dev/profiles/1/recompute-all?limit=50", http.StatusAccepted, map[string]any{
		"task_ids": map[string]string{
			"backfill_profile":                "t-1",
			"compute_profile_embedding":       "t-2",
			"compute_profile_recommendations": "t-3",
		},
	})
	b.taskSequence("t-3", pending(), success())

	page := NewSettingsPage(testDeps(t, server, nil))
	require.NoError(t, page.RecomputeAll(context.Background()))

	_, err := page.WaitTask(waitCtx(t))
	require.NoError(t, err)

	snap := page.Snapshot()
	assert.Equal(t, "t-3", snap.DevTask.ID)
	assert.Equal(t, tasks.PhaseSuccess, snap.DevTask.Phase)
	assert.Len(t, snap.TaskIDs, 3)
	assert.Equal(t, 0, b.count("GET /api/v1/tasks/t-1"))
}

func TestSettingsPage_RecomputeAllErrors(t *testing.T) {
	t.Run("backend error", func(t *testing.T) {
		b, server := newBackend(t)
		b.json("POST /api/v1/dev/profiles/1/recompute-all?limit=50", http.StatusForbidden, map[string]string{"detail": "dev endpoints disabled"})

		page := NewSettingsPage(testDeps(t, server, nil))
		require.Error(t, page.RecomputeAll(context.Background()))
		assert.Contains(t, page.Snapshot().DevError, "dev endpoints disabled")
	})

	t.Run("no recommendation task", func(t *testing.T) {
		b, server := newBackend(t)
		b.json("POST /api/v1/dev/profiles/1/recompute-all?limit=50", http.StatusAccepted, map[string]any{
			"task_ids": map[string]string{"backfill_profile": "t-1"},
		})

		page := NewSettingsPage(testDeps(t, server, nil))
		require.Error(t, page.RecomputeAll(context.Background()))

		snap := page.Snapshot()
		assert.NotEmpty(t, snap.DevError)
		assert.Equal(t, tasks.PhaseIdle, snap.DevTask.Phase)
	})
}

func TestSettingsPage_BackfillFailure(t *testing.T) {
	b, server := newBackend(t)
	b.json("POST /api/v1/dev/profiles/1/backfill", http.StatusAccepted, map[string]string{"task_id": "bf-1"})
	b.taskSequence("bf-1", failure(""))

	page := NewSettingsPage(testDeps(t, server, nil))
	require.NoError(t, page.Backfill(context.Background()))

	_, err := page.WaitTask(waitCtx(t))
	require.Error(t, err)

	snap := page.Snapshot()
	assert.Equal(t, tasks.PhaseFailure, snap.DevTask.Phase)
	assert.Equal(t, tasks.GenericFailureMessage, snap.DevTask.Error)
}
