package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/jobsearch-console/internal/types"
)

// Collection is the CRUD surface of one profile sub-resource.
type Collection[T types.Record] struct {
	endpoints *Endpoints
	kind      types.RecordKind
}

// Records returns the collection of kind, decoded as T.
func Records[T types.Record](e *Endpoints, kind types.RecordKind) *Collection[T] {
	return &Collection[T]{endpoints: e, kind: kind}
}

// Kind returns the backend collection name.
func (c *Collection[T]) Kind() types.RecordKind {
	return c.kind
}

func (c *Collection[T]) path(profileID int) string {
	return c.endpoints.profilePath(profileID, "/"+string(c.kind))
}

func (c *Collection[T]) itemPath(profileID, id int) string {
	return fmt.Sprintf("%s/%d", c.path(profileID), id)
}

// List returns every record of the collection.
func (c *Collection[T]) List(ctx context.Context, profileID int) ([]T, error) {
	var out []T
	err := c.endpoints.client.Do(ctx, http.MethodGet, c.path(profileID), nil, &out)
	return out, err
}

// Create stores a new record and returns it with its id.
func (c *Collection[T]) Create(ctx context.Context, profileID int, record T) (T, error) {
	var out T
	err := c.endpoints.client.Do(ctx, http.MethodPost, c.path(profileID), record, &out)
	return out, err
}

// Update replaces the record with the given id.
func (c *Collection[T]) Update(ctx context.Context, profileID, id int, record T) (T, error) {
	var out T
	err := c.endpoints.client.Do(ctx, http.MethodPut, c.itemPath(profileID, id), record, &out)
	return out, err
}

// Delete removes the record with the given id.
func (c *Collection[T]) Delete(ctx context.Context, profileID, id int) error {
	return c.endpoints.client.Do(ctx, http.MethodDelete, c.itemPath(profileID, id), nil, nil)
}

// Typed accessors for each sub-resource.

func (e *Endpoints) Experiences() *Collection[types.Experience] {
	return Records[types.Experience](e, types.KindExperiences)
}

func (e *Endpoints) Projects() *Collection[types.Project] {
	return Records[types.Project](e, types.KindProjects)
}

func (e *Endpoints) Achievements() *Collection[types.Achievement] {
	return Records[types.Achievement](e, types.KindAchievements)
}

func (e *Endpoints) Education() *Collection[types.Education] {
	return Records[types.Education](e, types.KindEducation)
}

func (e *Endpoints) Certificates() *Collection[types.Certificate] {
	return Records[types.Certificate](e, types.KindCertificates)
}

func (e *Endpoints) Languages() *Collection[types.Language] {
	return Records[types.Language](e, types.KindLanguages)
}

func (e *Endpoints) Links() *Collection[types.Link] {
	return Records[types.Link](e, types.KindLinks)
}

func (e *Endpoints) Skills() *Collection[types.Skill] {
	return Records[types.Skill](e, types.KindSkills)
}

func (e *Endpoints) ResumeVersions() *Collection[types.ResumeVersion] {
	return Records[types.ResumeVersion](e, types.KindResumeVersions)
}

func (e *Endpoints) CoverLetterVersions() *Collection[types.CoverLetterVersion] {
	return Records[types.CoverLetterVersion](e, types.KindCoverLetterVersions)
}
