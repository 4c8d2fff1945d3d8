//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	var exp Experience
	err := json.Unmarshal([]byte(`{"id": 4, "company_name": "Acme", "position_title": "Engineer", "start_date": "2021-03-15", "end_date": null}`), &exp)
	require.NoError(t, err)

	require.NotNil(t, exp.StartDate)
	assert.Equal(t, "2021-03-15", exp.StartDate.String())
	assert.Nil(t, exp.EndDate)
	assert.Equal(t, 4, exp.RecordID())

	out, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"start_date":"2021-03-15"`)
}

func TestDate_Invalid(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"15/03/2021"`), &d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestTailoring_KeepsRawPayload(t *testing.T) {
	payload := `{"profile_id": 1, "vacancy_id": 9, "explanation": {"final": {"score": 0.71}}, "evidence": []}`

	var tailoring Tailoring
	require.NoError(t, json.Unmarshal([]byte(payload), &tailoring))

	assert.Equal(t, 9, tailoring.VacancyID)
	assert.JSONEq(t, `{"final": {"score": 0.71}}`, string(tailoring.Explanation))
	assert.JSONEq(t, payload, string(tailoring.Raw))
}

func TestHHImportRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *HHImportRequest)
		wantErr bool
	}{
		{"defaults are valid", func(_ *HHImportRequest) {}, false},
		{"empty text", func(r *HHImportRequest) { r.Text = "" }, true},
		{"per page too large", func(r *HHImportRequest) { r.PerPage = 101 }, true},
		{"pages limit zero", func(r *HHImportRequest) { r.PagesLimit = 0 }, true},
		{"negative salary", func(r *HHImportRequest) { v := -1; r.SalaryFrom = &v }, true},
		{"extra params scalar", func(r *HHImportRequest) { r.ExtraParams = map[string]any{"only_with_salary": true} }, false},
		{"extra params list", func(r *HHImportRequest) { r.ExtraParams = map[string]any{"area": []any{"1", float64(2)}} }, false},
		{"extra params nested object", func(r *HHImportRequest) { r.ExtraParams = map[string]any{"bad": map[string]any{}} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewHHImportRequest("golang developer")
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateFromProfile_SendsEmptyTagSets(t *testing.T) {
	p := Profile{
		ID:            1,
		ResumeText:    "Go developer",
		RemoteOK:      true,
		PreferredTech: []string{"Go", "PostgreSQL"},
	}

	update := UpdateFromProfile(p)

	out, err := json.Marshal(update)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"excluded_tech":[]`)
	assert.Contains(t, string(out), `"preferred_tech":["Go","PostgreSQL"]`)
	assert.Contains(t, string(out), `"remote_ok":true`)
	assert.NotContains(t, string(out), `"team_preferences_json"`)
}

func TestParseRecordKind(t *testing.T) {
	kind, ok := ParseRecordKind("resume-versions")
	assert.True(t, ok)
	assert.Equal(t, KindResumeVersions, kind)

	_, ok = ParseRecordKind("hobbies")
	assert.False(t, ok)

	assert.Len(t, RecordKinds(), 10)
}

func TestTaskStatus_Terminal(t *testing.T) {
	assert.False(t, TaskStatus{State: TaskPending}.Terminal())
	assert.False(t, TaskStatus{State: "STARTED"}.Terminal())
	assert.True(t, TaskStatus{State: TaskSuccess}.Terminal())
	assert.True(t, TaskStatus{State: TaskFailure}.Terminal())
}

func TestRecomputeAllResponse_FinalTaskID(t *testing.T) {
	var resp RecomputeAllResponse
	require.NoError(t, json.Unmarshal([]byte(`{"task_ids": {"backfill_profile": "a", "rebuild_profile_embedding": "b", "compute_profile_recommendations": "c"}}`), &resp))
	assert.Equal(t, "c", resp.FinalTaskID())
}

func TestRecomputeAllResponse_FinalTaskIDNil(t *testing.T) {
	var resp *RecomputeAllResponse
	assert.Empty(t, resp.FinalTaskID())
}
