package editor

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobsearch-console/internal/format"
	"github.com/jonathan/jobsearch-console/internal/forms"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// RecordID reads the id of any backend record; zero means unsaved.
func RecordID[T types.Record](r T) (int, bool) {
	id := r.RecordID()
	return id, id != 0
}

func dateRange(from, to *types.Date, current bool) string {
	start := "?"
	if from != nil {
		start = from.String()
	}
	end := "?"
	switch {
	case current:
		end = "present"
	case to != nil:
		end = to.String()
	}
	if from == nil && to == nil && !current {
		return ""
	}
	return fmt.Sprintf(" (%s - %s)", start, end)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExperienceShape edits work history entries.
func ExperienceShape() Shape[types.Experience] {
	return Shape[types.Experience]{
		ID: RecordID[types.Experience],
		Title: func(r types.Experience) string {
			return format.SafeText(&r.PositionTitle, "New experience")
		},
		Summary: func(r types.Experience) string {
			return joinNonEmpty(" | ", r.CompanyName+dateRange(r.StartDate, r.EndDate, r.IsCurrent), deref(r.TechStackText))
		},
		Fields: func(d *types.Experience) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Company", Target: &d.CompanyName, Required: true},
				&forms.TextField{Name: "Position", Target: &d.PositionTitle, Required: true},
				&forms.OptionalTextField{Name: "Location", Target: &d.Location},
				&forms.DateField{Name: "Start date", Target: &d.StartDate},
				&forms.DateField{Name: "End date", Target: &d.EndDate},
				&forms.SwitchField{Name: "Current job", Target: &d.IsCurrent},
				&forms.SelectField{Name: "Employment type", Target: &d.EmploymentType, Options: types.EmploymentTypes},
				&forms.TextAreaField{Name: "Responsibilities", Target: &d.ResponsibilitiesText},
				&forms.TextAreaField{Name: "Achievements", Target: &d.AchievementsText},
				&forms.OptionalTextField{Name: "Tech stack", Target: &d.TechStackText},
			}
		},
	}
}

// ProjectShape edits portfolio projects.
func ProjectShape() Shape[types.Project] {
	return Shape[types.Project]{
		ID: RecordID[types.Project],
		Title: func(r types.Project) string {
			return format.SafeText(&r.Name, "New project")
		},
		Summary: func(r types.Project) string {
			return joinNonEmpty(" | ", deref(r.Role)+dateRange(r.StartDate, r.EndDate, false), deref(r.TechStackText), deref(r.URL))
		},
		Fields: func(d *types.Project) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Name", Target: &d.Name, Required: true},
				&forms.OptionalTextField{Name: "Role", Target: &d.Role},
				&forms.TextAreaField{Name: "Description", Target: &d.DescriptionText},
				&forms.DateField{Name: "Start date", Target: &d.StartDate},
				&forms.DateField{Name: "End date", Target: &d.EndDate},
				&forms.OptionalTextField{Name: "Tech stack", Target: &d.TechStackText},
				&forms.OptionalTextField{Name: "URL", Target: &d.URL},
			}
		},
	}
}

// AchievementShape edits accomplishments.
func AchievementShape() Shape[types.Achievement] {
	return Shape[types.Achievement]{
		ID: RecordID[types.Achievement],
		Title: func(r types.Achievement) string {
			return format.SafeText(&r.Title, "New achievement")
		},
		Summary: func(r types.Achievement) string {
			return joinNonEmpty(" | ", deref(r.Metric), format.Truncate(r.DescriptionText, 80))
		},
		Fields: func(d *types.Achievement) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Title", Target: &d.Title, Required: true},
				&forms.TextAreaField{Name: "Description", Target: &d.DescriptionText},
				&forms.OptionalTextField{Name: "Metric", Target: &d.Metric},
				&forms.DateField{Name: "Achieved at", Target: &d.AchievedAt},
				&forms.IntField{Name: "Related experience id", Target: &d.RelatedExperienceID},
				&forms.IntField{Name: "Related project id", Target: &d.RelatedProjectID},
			}
		},
	}
}

// EducationShape edits degrees and courses.
func EducationShape() Shape[types.Education] {
	return Shape[types.Education]{
		ID: RecordID[types.Education],
		Title: func(r types.Education) string {
			return format.SafeText(&r.Institution, "New education")
		},
		Summary: func(r types.Education) string {
			years := ""
			if r.StartYear != nil || r.EndYear != nil {
				years = fmt.Sprintf("%s-%s", yearText(r.StartYear), yearText(r.EndYear))
			}
			return joinNonEmpty(", ", r.DegreeLevel, r.FieldOfStudy, years)
		},
		Fields: func(d *types.Education) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Institution", Target: &d.Institution, Required: true},
				&forms.TextField{Name: "Degree level", Target: &d.DegreeLevel},
				&forms.TextField{Name: "Field of study", Target: &d.FieldOfStudy},
				&forms.IntField{Name: "Start year", Target: &d.StartYear},
				&forms.IntField{Name: "End year", Target: &d.EndYear},
				&forms.OptionalTextField{Name: "Description", Target: &d.DescriptionText, Lines: true},
				&forms.FloatField{Name: "GPA", Target: &d.GPA},
			}
		},
	}
}

func yearText(y *int) string {
	if y == nil {
		return "?"
	}
	return fmt.Sprint(*y)
}

// CertificateShape edits certifications.
func CertificateShape() Shape[types.Certificate] {
	return Shape[types.Certificate]{
		ID: RecordID[types.Certificate],
		Title: func(r types.Certificate) string {
			return format.SafeText(&r.Name, "New certificate")
		},
		Summary: func(r types.Certificate) string {
			issued := ""
			if r.IssuedAt != nil {
				issued = "issued " + r.IssuedAt.String()
			}
			return joinNonEmpty(", ", r.Issuer, issued)
		},
		Fields: func(d *types.Certificate) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Name", Target: &d.Name, Required: true},
				&forms.TextField{Name: "Issuer", Target: &d.Issuer},
				&forms.DateField{Name: "Issued at", Target: &d.IssuedAt},
				&forms.DateField{Name: "Expires at", Target: &d.ExpiresAt},
				&forms.OptionalTextField{Name: "URL", Target: &d.URL},
			}
		},
	}
}

// LanguageShape edits spoken languages.
func LanguageShape() Shape[types.Language] {
	return Shape[types.Language]{
		ID: RecordID[types.Language],
		Title: func(r types.Language) string {
			return format.SafeText(&r.Language, "New language")
		},
		Summary: func(r types.Language) string { return r.Level },
		Fields: func(d *types.Language) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Language", Target: &d.Language, Required: true},
				&forms.TextField{Name: "Level", Target: &d.Level, Required: true},
			}
		},
	}
}

// LinkShape edits external links.
func LinkShape() Shape[types.Link] {
	return Shape[types.Link]{
		ID: RecordID[types.Link],
		Title: func(r types.Link) string {
			return format.SafeText(r.Label, format.SafeText(&r.Type, "New link"))
		},
		Summary: func(r types.Link) string { return r.URL },
		Fields: func(d *types.Link) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Type", Target: &d.Type, Required: true},
				&forms.TextField{Name: "URL", Target: &d.URL, Required: true},
				&forms.OptionalTextField{Name: "Label", Target: &d.Label},
			}
		},
	}
}

// SkillShape edits structured skills.
func SkillShape() Shape[types.Skill] {
	return Shape[types.Skill]{
		ID: RecordID[types.Skill],
		Title: func(r types.Skill) string {
			return format.SafeText(&r.NameRaw, "New skill")
		},
		Summary: func(r types.Skill) string {
			years := ""
			if r.Years != nil {
				years = fmt.Sprintf("%g y", *r.Years)
			}
			primary := ""
			if r.IsPrimary {
				primary = "primary"
			}
			return joinNonEmpty(", ", r.Category, r.Level, years, primary)
		},
		Fields: func(d *types.Skill) []forms.Field {
			return []forms.Field{
				&forms.TextField{Name: "Name", Target: &d.NameRaw, Required: true},
				&forms.TextField{Name: "Category", Target: &d.Category},
				&forms.TextField{Name: "Level", Target: &d.Level},
				&forms.FloatField{Name: "Years", Target: &d.Years},
				&forms.IntField{Name: "Last used year", Target: &d.LastUsedYear},
				&forms.SwitchField{Name: "Primary", Target: &d.IsPrimary},
				&forms.OptionalTextField{Name: "Evidence", Target: &d.EvidenceText, Lines: true},
			}
		},
	}
}

// ResumeVersionShape edits stored resumes.
func ResumeVersionShape() Shape[types.ResumeVersion] {
	return Shape[types.ResumeVersion]{
		ID: RecordID[types.ResumeVersion],
		Title: func(r types.ResumeVersion) string {
			return format.SafeText(r.Title, fmt.Sprintf("Resume #%d", r.ID))
		},
		Summary: func(r types.ResumeVersion) string {
			return joinNonEmpty(" | ", r.Status, r.Source, format.Truncate(firstLine(r.ContentText), 60))
		},
		Fields: func(d *types.ResumeVersion) []forms.Field {
			return []forms.Field{
				&forms.OptionalTextField{Name: "Title", Target: &d.Title},
				&forms.TextAreaField{Name: "Content", Target: &d.ContentText, Required: true},
			}
		},
	}
}

// CoverLetterVersionShape edits stored cover letters.
func CoverLetterVersionShape() Shape[types.CoverLetterVersion] {
	return Shape[types.CoverLetterVersion]{
		ID: RecordID[types.CoverLetterVersion],
		Title: func(r types.CoverLetterVersion) string {
			return format.SafeText(r.Title, fmt.Sprintf("Cover letter #%d", r.ID))
		},
		Summary: func(r types.CoverLetterVersion) string {
			return joinNonEmpty(" | ", r.Status, deref(r.Subject), format.Truncate(firstLine(r.ContentText), 60))
		},
		Fields: func(d *types.CoverLetterVersion) []forms.Field {
			return []forms.Field{
				&forms.OptionalTextField{Name: "Title", Target: &d.Title},
				&forms.OptionalTextField{Name: "Subject", Target: &d.Subject},
				&forms.TextAreaField{Name: "Content", Target: &d.ContentText, Required: true},
			}
		},
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
