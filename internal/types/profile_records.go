//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// RecordKind names a profile-scoped collection on the backend.
type RecordKind string

// Profile sub-resource collections.
const (
	KindExperiences         RecordKind = "experiences"
	KindProjects            RecordKind = "projects"
	KindAchievements        RecordKind = "achievements"
	KindEducation           RecordKind = "education"
	KindCertificates        RecordKind = "certificates"
	KindLanguages           RecordKind = "languages"
	KindLinks               RecordKind = "links"
	KindSkills              RecordKind = "skills"
	KindResumeVersions      RecordKind = "resume-versions"
	KindCoverLetterVersions RecordKind = "cover-letter-versions"
)

// RecordKinds lists every sub-resource in display order.
func RecordKinds() []RecordKind {
	return []RecordKind{
		KindExperiences,
		KindProjects,
		KindAchievements,
		KindEducation,
		KindCertificates,
		KindLanguages,
		KindLinks,
		KindSkills,
		KindResumeVersions,
		KindCoverLetterVersions,
	}
}

// ParseRecordKind resolves a collection name.
func ParseRecordKind(s string) (RecordKind, bool) {
	for _, k := range RecordKinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Record is implemented by every profile sub-resource.
// A zero RecordID means the record has not been persisted yet.
type Record interface {
	RecordID() int
}

// Document version statuses.
const (
	VersionStatusDraft    = "draft"
	VersionStatusApproved = "approved"
)

// Experience is a work history entry
type Experience struct {
	ID                   int        `json:"id,omitempty"`
	ProfileID            int        `json:"profile_id,omitempty"`
	CompanyName          string     `json:"company_name"`
	PositionTitle        string     `json:"position_title"`
	Location             *string    `json:"location"`
	StartDate            *Date      `json:"start_date"`
	EndDate              *Date      `json:"end_date"`
	IsCurrent            bool       `json:"is_current"`
	ResponsibilitiesText string     `json:"responsibilities_text"`
	AchievementsText     string     `json:"achievements_text"`
	TechStackText        *string    `json:"tech_stack_text"`
	EmploymentType       *string    `json:"employment_type"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Experience) RecordID() int { return r.ID }

// Project is a portfolio project
type Project struct {
	ID              int        `json:"id,omitempty"`
	ProfileID       int        `json:"profile_id,omitempty"`
	Name            string     `json:"name"`
	Role            *string    `json:"role"`
	DescriptionText string     `json:"description_text"`
	StartDate       *Date      `json:"start_date"`
	EndDate         *Date      `json:"end_date"`
	TechStackText   *string    `json:"tech_stack_text"`
	URL             *string    `json:"url"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Project) RecordID() int { return r.ID }

// Achievement is a measurable accomplishment
type Achievement struct {
	ID                  int        `json:"id,omitempty"`
	ProfileID           int        `json:"profile_id,omitempty"`
	Title               string     `json:"title"`
	DescriptionText     string     `json:"description_text"`
	Metric              *string    `json:"metric"`
	AchievedAt          *Date      `json:"achieved_at"`
	RelatedExperienceID *int       `json:"related_experience_id"`
	RelatedProjectID    *int       `json:"related_project_id"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Achievement) RecordID() int { return r.ID }

// Education is a degree or course of study
type Education struct {
	ID              int        `json:"id,omitempty"`
	ProfileID       int        `json:"profile_id,omitempty"`
	Institution     string     `json:"institution"`
	DegreeLevel     string     `json:"degree_level"`
	FieldOfStudy    string     `json:"field_of_study"`
	StartYear       *int       `json:"start_year"`
	EndYear         *int       `json:"end_year"`
	DescriptionText *string    `json:"description_text"`
	GPA             *float64   `json:"gpa"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Education) RecordID() int { return r.ID }

// Certificate is a professional certification
type Certificate struct {
	ID        int        `json:"id,omitempty"`
	ProfileID int        `json:"profile_id,omitempty"`
	Name      string     `json:"name"`
	Issuer    string     `json:"issuer"`
	IssuedAt  *Date      `json:"issued_at"`
	ExpiresAt *Date      `json:"expires_at"`
	URL       *string    `json:"url"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Certificate) RecordID() int { return r.ID }

// Language is a spoken language and proficiency level
type Language struct {
	ID        int        `json:"id,omitempty"`
	ProfileID int        `json:"profile_id,omitempty"`
	Language  string     `json:"language"`
	Level     string     `json:"level"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Language) RecordID() int { return r.ID }

// Link is an external profile link (GitHub, LinkedIn, portfolio)
type Link struct {
	ID        int        `json:"id,omitempty"`
	ProfileID int        `json:"profile_id,omitempty"`
	Type      string     `json:"type"`
	URL       string     `json:"url"`
	Label     *string    `json:"label"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Link) RecordID() int { return r.ID }

// Skill is a structured skill entry
type Skill struct {
	ID            int        `json:"id,omitempty"`
	ProfileID     int        `json:"profile_id,omitempty"`
	NameRaw       string     `json:"name_raw"`
	NormalizedKey *string    `json:"normalized_key"`
	Category      string     `json:"category"`
	Level         string     `json:"level"`
	Years         *float64   `json:"years"`
	LastUsedYear  *int       `json:"last_used_year"`
	IsPrimary     bool       `json:"is_primary"`
	EvidenceText  *string    `json:"evidence_text"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// RecordID implements Record.
func (r Skill) RecordID() int { return r.ID }

// ResumeVersion is a stored resume draft, possibly tailored to a vacancy
type ResumeVersion struct {
	ID          int        `json:"id,omitempty"`
	ProfileID   int        `json:"profile_id,omitempty"`
	VacancyID   *int       `json:"vacancy_id"`
	Title       *string    `json:"title"`
	ContentText string     `json:"content_text"`
	Format      string     `json:"format,omitempty"`
	Source      string     `json:"source,omitempty"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// RecordID implements Record.
func (r ResumeVersion) RecordID() int { return r.ID }

// Approved reports whether the version reached its terminal status.
func (r ResumeVersion) Approved() bool { return r.Status == VersionStatusApproved }

// CoverLetterVersion is a stored cover letter draft
type CoverLetterVersion struct {
	ID          int        `json:"id,omitempty"`
	ProfileID   int        `json:"profile_id,omitempty"`
	VacancyID   *int       `json:"vacancy_id"`
	Title       *string    `json:"title"`
	Subject     *string    `json:"subject"`
	ContentText string     `json:"content_text"`
	Source      string     `json:"source,omitempty"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// RecordID implements Record.
func (r CoverLetterVersion) RecordID() int { return r.ID }

// Approved reports whether the version reached its terminal status.
func (r CoverLetterVersion) Approved() bool { return r.Status == VersionStatusApproved }

// DocumentByTask is the document produced by a generation task.
type DocumentByTask struct {
	TaskID             string              `json:"task_id"`
	State              string              `json:"state"`
	DocumentType       string              `json:"document_type"`
	ResumeVersion      *ResumeVersion      `json:"resume_version,omitempty"`
	CoverLetterVersion *CoverLetterVersion `json:"cover_letter_version,omitempty"`
}
