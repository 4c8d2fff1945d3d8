package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonathan/jobsearch-console/internal/types"
)

// Endpoints maps backend resources to client calls. Profile-scoped
// operations treat a zero profile id as the default profile.
type Endpoints struct {
	client           *Client
	defaultProfileID int
}

// NewEndpoints creates the catalogue over client.
func NewEndpoints(client *Client, defaultProfileID int) *Endpoints {
	return &Endpoints{client: client, defaultProfileID: defaultProfileID}
}

// Client returns the underlying REST client.
func (e *Endpoints) Client() *Client {
	return e.client
}

// DefaultProfileID returns the profile used when callers pass zero.
func (e *Endpoints) DefaultProfileID() int {
	return e.defaultProfileID
}

func (e *Endpoints) profile(profileID int) int {
	if profileID == 0 {
		return e.defaultProfileID
	}
	return profileID
}

func (e *Endpoints) profilePath(profileID int, suffix string) string {
	return fmt.Sprintf("/profiles/%d%s", e.profile(profileID), suffix)
}

func withLimit(path string, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return path + "?" + q.Encode()
}

// ListVacancies returns all imported vacancies.
func (e *Endpoints) ListVacancies(ctx context.Context) ([]types.Vacancy, error) {
	var out []types.Vacancy
	err := e.client.Do(ctx, http.MethodGet, "/vacancies", nil, &out)
	return out, err
}

// GetVacancy returns one vacancy.
func (e *Endpoints) GetVacancy(ctx context.Context, vacancyID int) (*types.Vacancy, error) {
	var out *types.Vacancy
	err := e.client.Do(ctx, http.MethodGet, fmt.Sprintf("/vacancies/%d", vacancyID), nil, &out)
	return out, err
}

// ListProfiles returns every profile.
func (e *Endpoints) ListProfiles(ctx context.Context) ([]types.Profile, error) {
	var out []types.Profile
	err := e.client.Do(ctx, http.MethodGet, "/profiles", nil, &out)
	return out, err
}

// GetProfile returns the profile record.
func (e *Endpoints) GetProfile(ctx context.Context, profileID int) (*types.Profile, error) {
	var out *types.Profile
	err := e.client.Do(ctx, http.MethodGet, e.profilePath(profileID, ""), nil, &out)
	return out, err
}

// UpdateProfile replaces the editable profile fields.
func (e *Endpoints) UpdateProfile(ctx context.Context, profileID int, payload types.ProfileUpdate) (*types.Profile, error) {
	var out *types.Profile
	err := e.client.Do(ctx, http.MethodPut, e.profilePath(profileID, ""), payload, &out)
	return out, err
}

// GetRecommendations returns the ranked vacancies for a profile.
func (e *Endpoints) GetRecommendations(ctx context.Context, profileID, limit int) (*types.RecommendationsResponse, error) {
	var out *types.RecommendationsResponse
	err := e.client.Do(ctx, http.MethodGet, withLimit(e.profilePath(profileID, "/recommendations"), limit), nil, &out)
	return out, err
}

// RecomputeRecommendations enqueues a recommendation rebuild.
func (e *Endpoints) RecomputeRecommendations(ctx context.Context, profileID, limit int) (*types.TaskRef, error) {
	var out *types.TaskRef
	err := e.client.Do(ctx, http.MethodPost, withLimit(e.profilePath(profileID, "/recommendations/recompute"), limit), nil, &out)
	return out, err
}

// GetTailoring returns the match explanation between a profile and a vacancy.
func (e *Endpoints) GetTailoring(ctx context.Context, profileID, vacancyID int) (*types.Tailoring, error) {
	var out *types.Tailoring
	err := e.client.Do(ctx, http.MethodGet, e.profilePath(profileID, fmt.Sprintf("/vacancies/%d/tailoring", vacancyID)), nil, &out)
	return out, err
}

// StartHHImport enqueues an hh.ru import.
func (e *Endpoints) StartHHImport(ctx context.Context, payload types.HHImportRequest) (*types.TaskRef, error) {
	var out *types.TaskRef
	err := e.client.Do(ctx, http.MethodPost, "/import/hh", payload, &out)
	return out, err
}

// GetTask returns the current status of a background task.
func (e *Endpoints) GetTask(ctx context.Context, taskID string) (*types.TaskStatus, error) {
	var out *types.TaskStatus
	err := e.client.Do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(taskID), nil, &out)
	return out, err
}

// RecomputeAll runs backfill, embedding and recommendation tasks in a chain.
func (e *Endpoints) RecomputeAll(ctx context.Context, profileID, limit int) (*types.RecomputeAllResponse, error) {
	var out *types.RecomputeAllResponse
	err := e.client.Do(ctx, http.MethodPost, withLimit(fmt.Sprintf("/dev/profiles/%d/recompute-all", e.profile(profileID)), limit), nil, &out)
	return out, err
}

// Backfill enqueues normalization of the legacy profile text into sub-resources.
func (e *Endpoints) Backfill(ctx context.Context, profileID int) (*types.TaskRef, error) {
	var out *types.TaskRef
	err := e.client.Do(ctx, http.MethodPost, fmt.Sprintf("/dev/profiles/%d/backfill", e.profile(profileID)), nil, &out)
	return out, err
}

// GenerateResumeDraft enqueues a resume draft tailored to a vacancy.
func (e *Endpoints) GenerateResumeDraft(ctx context.Context, profileID, vacancyID int) (*types.TaskRef, error) {
	var out *types.TaskRef
	err := e.client.Do(ctx, http.MethodPost, e.profilePath(profileID, fmt.Sprintf("/vacancies/%d/resume/generate", vacancyID)), nil, &out)
	return out, err
}

// GenerateCoverLetterDraft enqueues a cover letter draft tailored to a vacancy.
func (e *Endpoints) GenerateCoverLetterDraft(ctx context.Context, profileID, vacancyID int) (*types.TaskRef, error) {
	var out *types.TaskRef
	err := e.client.Do(ctx, http.MethodPost, e.profilePath(profileID, fmt.Sprintf("/vacancies/%d/cover-letter/generate", vacancyID)), nil, &out)
	return out, err
}

// DocumentByTask returns the document produced by a finished generation task.
func (e *Endpoints) DocumentByTask(ctx context.Context, profileID int, taskID string) (*types.DocumentByTask, error) {
	var out *types.DocumentByTask
	err := e.client.Do(ctx, http.MethodGet, e.profilePath(profileID, "/documents/by-task/"+url.PathEscape(taskID)), nil, &out)
	return out, err
}

// ApproveResumeVersion moves a resume version to the approved status.
func (e *Endpoints) ApproveResumeVersion(ctx context.Context, profileID, versionID int) (*types.ResumeVersion, error) {
	var out *types.ResumeVersion
	err := e.client.Do(ctx, http.MethodPost, e.profilePath(profileID, fmt.Sprintf("/resume-versions/%d/approve", versionID)), nil, &out)
	return out, err
}

// ApproveCoverLetterVersion moves a cover letter version to the approved status.
func (e *Endpoints) ApproveCoverLetterVersion(ctx context.Context, profileID, versionID int) (*types.CoverLetterVersion, error) {
	var out *types.CoverLetterVersion
	err := e.client.Do(ctx, http.MethodPost, e.profilePath(profileID, fmt.Sprintf("/cover-letter-versions/%d/approve", versionID)), nil, &out)
	return out, err
}
