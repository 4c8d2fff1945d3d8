//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"
)

// Allowed values for the enumerated profile fields.
var (
	EmploymentTypes = []string{"full_time", "part_time", "contract", "internship", "project", "volunteer"}
	ScheduleTypes   = []string{"full_day", "shift", "flexible", "remote", "hybrid"}
	SeniorityLevels = []string{"intern", "junior", "middle", "senior", "lead", "principal"}
)

// Profile represents the job seeker's profile record
type Profile struct {
	ID           int     `json:"id"`
	Title        *string `json:"title"`
	ResumeText   string  `json:"resume_text"`
	SkillsText   *string `json:"skills_text"`
	Location     *string `json:"location"`
	RemoteOK     bool    `json:"remote_ok"`
	RelocationOK bool    `json:"relocation_ok"`
	SalaryMin    *int    `json:"salary_min"`

	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Telegram *string `json:"telegram"`

	City    *string `json:"city"`
	Country *string `json:"country"`
	Metro   *string `json:"metro"`

	Citizenship              *string `json:"citizenship"`
	WorkAuthorizationCountry *string `json:"work_authorization_country"`
	NeedsSponsorship         bool    `json:"needs_sponsorship"`

	AvailableFrom    *Date `json:"available_from"`
	NoticePeriodDays *int  `json:"notice_period_days"`

	PreferredEmployment *string `json:"preferred_employment"`
	PreferredSchedule   *string `json:"preferred_schedule"`

	// Tag sets: order is kept for display, ignored for matching
	PreferredIndustries   []string `json:"preferred_industries"`
	PreferredCompanyTypes []string `json:"preferred_company_types"`
	InterestTags          []string `json:"interest_tags"`
	PreferredTech         []string `json:"preferred_tech"`
	ExcludedTech          []string `json:"excluded_tech"`

	// TeamPreferences is an open-ended document edited as raw JSON text
	TeamPreferences json.RawMessage `json:"team_preferences_json"`

	SummaryAbout   *string  `json:"summary_about"`
	SeniorityLevel *string  `json:"seniority_level"`
	YearsTotal     *float64 `json:"years_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is the full editable form of a profile sent on save.
type ProfileUpdate struct {
	Title        *string `json:"title"`
	ResumeText   *string `json:"resume_text"`
	SkillsText   *string `json:"skills_text"`
	Location     *string `json:"location"`
	RemoteOK     *bool   `json:"remote_ok"`
	RelocationOK *bool   `json:"relocation_ok"`
	SalaryMin    *int    `json:"salary_min"`

	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Telegram *string `json:"telegram"`

	City    *string `json:"city"`
	Country *string `json:"country"`
	Metro   *string `json:"metro"`

	Citizenship              *string `json:"citizenship"`
	WorkAuthorizationCountry *string `json:"work_authorization_country"`
	NeedsSponsorship         *bool   `json:"needs_sponsorship"`

	AvailableFrom    *Date `json:"available_from"`
	NoticePeriodDays *int  `json:"notice_period_days"`

	PreferredEmployment *string `json:"preferred_employment"`
	PreferredSchedule   *string `json:"preferred_schedule"`

	PreferredIndustries   []string `json:"preferred_industries"`
	PreferredCompanyTypes []string `json:"preferred_company_types"`
	InterestTags          []string `json:"interest_tags"`
	PreferredTech         []string `json:"preferred_tech"`
	ExcludedTech          []string `json:"excluded_tech"`

	TeamPreferences json.RawMessage `json:"team_preferences_json,omitempty"`

	SummaryAbout   *string  `json:"summary_about"`
	SeniorityLevel *string  `json:"seniority_level"`
	YearsTotal     *float64 `json:"years_total"`
}

// UpdateFromProfile builds the save payload for every editable field of p.
// Nil tag sets are sent as empty lists so a cleared field is persisted.
func UpdateFromProfile(p Profile) ProfileUpdate {
	resume := p.ResumeText
	remote := p.RemoteOK
	relocation := p.RelocationOK
	sponsorship := p.NeedsSponsorship

	return ProfileUpdate{
		Title:                    p.Title,
		ResumeText:               &resume,
		SkillsText:               p.SkillsText,
		Location:                 p.Location,
		RemoteOK:                 &remote,
		RelocationOK:             &relocation,
		SalaryMin:                p.SalaryMin,
		FullName:                 p.FullName,
		Email:                    p.Email,
		Phone:                    p.Phone,
		Telegram:                 p.Telegram,
		City:                     p.City,
		Country:                  p.Country,
		Metro:                    p.Metro,
		Citizenship:              p.Citizenship,
		WorkAuthorizationCountry: p.WorkAuthorizationCountry,
		NeedsSponsorship:         &sponsorship,
		AvailableFrom:            p.AvailableFrom,
		NoticePeriodDays:         p.NoticePeriodDays,
		PreferredEmployment:      p.PreferredEmployment,
		PreferredSchedule:        p.PreferredSchedule,
		PreferredIndustries:      nonNil(p.PreferredIndustries),
		PreferredCompanyTypes:    nonNil(p.PreferredCompanyTypes),
		InterestTags:             nonNil(p.InterestTags),
		PreferredTech:            nonNil(p.PreferredTech),
		ExcludedTech:             nonNil(p.ExcludedTech),
		TeamPreferences:          p.TeamPreferences,
		SummaryAbout:             p.SummaryAbout,
		SeniorityLevel:           p.SeniorityLevel,
		YearsTotal:               p.YearsTotal,
	}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
