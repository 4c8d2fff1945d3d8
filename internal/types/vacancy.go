// Package types provides type definitions for the view models exchanged with the job search backend.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// VacancyStatusOpen is the status of a vacancy still accepting applications.
const VacancyStatusOpen = "open"

// Vacancy represents an imported job posting
type Vacancy struct {
	ID          int       `json:"id"`
	Source      string    `json:"source"`
	ExternalID  string    `json:"external_id,omitempty"`
	Title       string    `json:"title"`
	CompanyName *string   `json:"company_name"`
	Location    *string   `json:"location"`
	SalaryFrom  *int      `json:"salary_from"`
	SalaryTo    *int      `json:"salary_to"`
	Currency    *string   `json:"currency"`
	Description *string   `json:"description"`
	URL         *string   `json:"url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Company returns the company name or an empty string.
func (v *Vacancy) Company() string {
	if v.CompanyName == nil {
		return ""
	}
	return *v.CompanyName
}

// Place returns the location or an empty string.
func (v *Vacancy) Place() string {
	if v.Location == nil {
		return ""
	}
	return *v.Location
}
