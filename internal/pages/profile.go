package pages

import (
	"context"
	"encoding/json"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobsearch-console/internal/editor"
	"github.com/jonathan/jobsearch-console/internal/forms"
	"github.com/jonathan/jobsearch-console/internal/schemas"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// ProfileSnapshot is the state of the profile form. Sub-resource lists are
// read through their Records accessors.
type ProfileSnapshot struct {
	Profile         Resource[*types.Profile]
	Draft           types.Profile
	PreferencesText string
	Saving          bool
	SaveError       string
	Notice          string
	Recompute       TaskState
	ApproveError    string
}

// ProfilePage edits the profile and every sub-resource.
type ProfilePage struct {
	base

	profile         Resource[*types.Profile]
	draft           types.Profile
	preferencesText string
	saving          bool
	saveError       string
	notice          string
	recompute       TaskState
	approveError    string

	experiences         *Records[types.Experience]
	projects            *Records[types.Project]
	achievements        *Records[types.Achievement]
	education           *Records[types.Education]
	certificates        *Records[types.Certificate]
	languages           *Records[types.Language]
	links               *Records[types.Link]
	skills              *Records[types.Skill]
	resumeVersions      *Records[types.ResumeVersion]
	coverLetterVersions *Records[types.CoverLetterVersion]
}

// NewProfilePage creates the page.
func NewProfilePage(deps Deps) *ProfilePage {
	p := &ProfilePage{}
	p.init(deps)

	e := deps.API
	p.experiences = newRecords(&p.base, e.Experiences(), editor.ExperienceShape())
	p.projects = newRecords(&p.base, e.Projects(), editor.ProjectShape())
	p.achievements = newRecords(&p.base, e.Achievements(), editor.AchievementShape())
	p.education = newRecords(&p.base, e.Education(), editor.EducationShape())
	p.certificates = newRecords(&p.base, e.Certificates(), editor.CertificateShape())
	p.languages = newRecords(&p.base, e.Languages(), editor.LanguageShape())
	p.links = newRecords(&p.base, e.Links(), editor.LinkShape())
	p.skills = newRecords(&p.base, e.Skills(), editor.SkillShape())
	p.resumeVersions = newRecords(&p.base, e.ResumeVersions(), editor.ResumeVersionShape())
	p.coverLetterVersions = newRecords(&p.base, e.CoverLetterVersions(), editor.CoverLetterVersionShape())
	return p
}

func (p *ProfilePage) Experiences() *Records[types.Experience]   { return p.experiences }
func (p *ProfilePage) Projects() *Records[types.Project]         { return p.projects }
func (p *ProfilePage) Achievements() *Records[types.Achievement] { return p.achievements }
func (p *ProfilePage) Education() *Records[types.Education]      { return p.education }
func (p *ProfilePage) Certificates() *Records[types.Certificate] { return p.certificates }
func (p *ProfilePage) Languages() *Records[types.Language]       { return p.languages }
func (p *ProfilePage) Links() *Records[types.Link]               { return p.links }
func (p *ProfilePage) Skills() *Records[types.Skill]             { return p.skills }
func (p *ProfilePage) ResumeVersions() *Records[types.ResumeVersion] {
	return p.resumeVersions
}
func (p *ProfilePage) CoverLetterVersions() *Records[types.CoverLetterVersion] {
	return p.coverLetterVersions
}

// Load fetches the profile and every sub-resource list in parallel. Each
// failure is recorded on its own resource.
func (p *ProfilePage) Load(ctx context.Context) {
	if !p.update(p.profile.begin) {
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		prof, err := p.deps.API.GetProfile(ctx, p.deps.ProfileID)
		p.update(func() {
			p.profile.finish(prof, err)
			if err == nil && prof != nil {
				p.resetDraft(*prof)
			}
		})
		return nil
	})
	for _, load := range []func(context.Context){
		p.experiences.Load,
		p.projects.Load,
		p.achievements.Load,
		p.education.Load,
		p.certificates.Load,
		p.languages.Load,
		p.links.Load,
		p.skills.Load,
		p.resumeVersions.Load,
		p.coverLetterVersions.Load,
	} {
		load := load
		g.Go(func() error {
			load(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *ProfilePage) resetDraft(prof types.Profile) {
	p.draft = prof
	p.draft.PreferredIndustries = append([]string(nil), prof.PreferredIndustries...)
	p.draft.PreferredCompanyTypes = append([]string(nil), prof.PreferredCompanyTypes...)
	p.draft.InterestTags = append([]string(nil), prof.InterestTags...)
	p.draft.PreferredTech = append([]string(nil), prof.PreferredTech...)
	p.draft.ExcludedTech = append([]string(nil), prof.ExcludedTech...)
	p.preferencesText = schemas.FormatPreferences(prof.TeamPreferences)
}

// Change applies fn to the profile draft.
func (p *ProfilePage) Change(fn func(draft *types.Profile)) {
	p.update(func() { fn(&p.draft) })
}

// SetPreferencesText replaces the raw preferences text. The text is kept as
// typed; Save rejects it if it is not a JSON object.
func (p *ProfilePage) SetPreferencesText(text string) {
	p.update(func() { p.preferencesText = text })
}

// ProfileForm binds a form to d and the raw preferences text.
func ProfileForm(d *types.Profile, preferences *string) *forms.Form {
	return &forms.Form{
		Title: "Profile",
		Fields: []forms.Field{
			&forms.OptionalTextField{Name: "Title", Target: &d.Title},
			&forms.OptionalTextField{Name: "Full name", Target: &d.FullName},
			&forms.OptionalTextField{Name: "Email", Target: &d.Email},
			&forms.OptionalTextField{Name: "Phone", Target: &d.Phone},
			&forms.OptionalTextField{Name: "Telegram", Target: &d.Telegram},
			&forms.OptionalTextField{Name: "City", Target: &d.City},
			&forms.OptionalTextField{Name: "Country", Target: &d.Country},
			&forms.OptionalTextField{Name: "Location", Target: &d.Location},
			&forms.SwitchField{Name: "Remote OK", Target: &d.RemoteOK},
			&forms.SwitchField{Name: "Relocation OK", Target: &d.RelocationOK},
			&forms.SwitchField{Name: "Needs sponsorship", Target: &d.NeedsSponsorship},
			&forms.IntField{Name: "Minimum salary", Target: &d.SalaryMin},
			&forms.DateField{Name: "Available from", Target: &d.AvailableFrom},
			&forms.IntField{Name: "Notice period (days)", Target: &d.NoticePeriodDays},
			&forms.SelectField{Name: "Preferred employment", Target: &d.PreferredEmployment, Options: types.EmploymentTypes},
			&forms.SelectField{Name: "Preferred schedule", Target: &d.PreferredSchedule, Options: types.ScheduleTypes},
			&forms.SelectField{Name: "Seniority", Target: &d.SeniorityLevel, Options: types.SeniorityLevels},
			&forms.FloatField{Name: "Years of experience", Target: &d.YearsTotal},
			&forms.TagField{Name: "Preferred industries", Target: &d.PreferredIndustries},
			&forms.TagField{Name: "Preferred company types", Target: &d.PreferredCompanyTypes},
			&forms.TagField{Name: "Interest tags", Target: &d.InterestTags},
			&forms.TagField{Name: "Preferred tech", Target: &d.PreferredTech},
			&forms.TagField{Name: "Excluded tech", Target: &d.ExcludedTech},
			&forms.OptionalTextField{Name: "About", Target: &d.SummaryAbout, Lines: true},
			&forms.OptionalTextField{Name: "Skills", Target: &d.SkillsText, Lines: true},
			&forms.TextAreaField{Name: "Resume", Target: &d.ResumeText, Required: true},
			&forms.JSONField{Name: "Team preferences", Target: preferences},
		},
	}
}

// Save validates the draft and sends it. Invalid preferences or a payload
// failing the profile schema block the save with a *ValidationError.
// When the settings ask for it, a recommendation recompute follows.
func (p *ProfilePage) Save(ctx context.Context) error {
	var (
		draft types.Profile
		text  string
	)
	if !p.update(func() {
		draft = p.draft
		text = p.preferencesText
		p.saveError = ""
		p.notice = ""
	}) {
		return ErrClosed
	}

	payload, err := buildProfileUpdate(draft, text)
	if err != nil {
		p.update(func() { p.saveError = ErrorText(err) })
		return err
	}

	p.update(func() { p.saving = true })
	saved, err := p.deps.API.UpdateProfile(ctx, p.deps.ProfileID, payload)
	p.update(func() {
		p.saving = false
		if err != nil {
			p.saveError = ErrorText(err)
			return
		}
		if saved != nil {
			p.profile.Data = saved
			p.resetDraft(*saved)
		}
		p.notice = "Profile saved"
	})
	if err != nil {
		return err
	}

	if p.deps.Settings != nil && p.deps.Settings.Load(ctx).AutoRecomputeAfterProfileSave {
		return p.startRecompute(ctx)
	}
	return nil
}

func buildProfileUpdate(draft types.Profile, preferencesText string) (types.ProfileUpdate, error) {
	prefs, err := schemas.ParsePreferences(preferencesText)
	if err != nil {
		return types.ProfileUpdate{}, schemaValidation(err)
	}

	payload := types.UpdateFromProfile(draft)
	payload.TeamPreferences = prefs

	doc, err := json.Marshal(payload)
	if err != nil {
		return types.ProfileUpdate{}, err
	}
	if err := schemas.Validate(schemas.ProfileUpdate, doc); err != nil {
		return types.ProfileUpdate{}, schemaValidation(err)
	}
	return payload, nil
}

func schemaValidation(err error) error {
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		if len(ve.Errors) == 1 {
			return &ValidationError{Field: ve.Errors[0].Field, Message: ve.Errors[0].Message, Cause: err}
		}
		return &ValidationError{Message: ve.Summary(), Cause: err}
	}
	return err
}

func (p *ProfilePage) startRecompute(ctx context.Context) error {
	limit := p.deps.Settings.Load(ctx).RecommendationsLimit
	ref, err := taskRef(p.deps.API.RecomputeRecommendations(ctx, p.deps.ProfileID, limit))
	if err != nil {
		p.update(func() { p.recompute = TaskState{Error: ErrorText(err)} })
		return err
	}

	p.update(func() { p.recompute = TaskState{ID: ref.TaskID, Phase: tasks.PhasePending, State: types.TaskPending} })
	_, err = p.track(ctx, ref.TaskID, trackHandlers{
		onUpdate: func(st tasks.Status) { p.recompute = taskState(st) },
		onSuccess: func(st tasks.Status) {
			p.recompute = taskState(st)
			p.recompute.Message = "Recommendations updated"
		},
		onFailure: func(st tasks.Status) { p.recompute = taskState(st) },
	}, nil)
	return err
}

// WaitTask blocks until the auto-recompute started by Save is done.
func (p *ProfilePage) WaitTask(ctx context.Context) (tasks.Status, error) {
	return p.waitTask(ctx)
}

// ApproveResumeVersion approves one resume version and swaps only that
// element of the list.
func (p *ProfilePage) ApproveResumeVersion(ctx context.Context, versionID int) (*types.ResumeVersion, error) {
	p.update(func() { p.approveError = "" })
	v, err := p.deps.API.ApproveResumeVersion(ctx, p.deps.ProfileID, versionID)
	if err != nil {
		p.update(func() { p.approveError = ErrorText(err) })
		return nil, err
	}
	if v != nil {
		p.resumeVersions.replace(*v)
	}
	return v, nil
}

// ApproveCoverLetterVersion approves one cover letter version and swaps only
// that element of the list.
func (p *ProfilePage) ApproveCoverLetterVersion(ctx context.Context, versionID int) (*types.CoverLetterVersion, error) {
	p.update(func() { p.approveError = "" })
	v, err := p.deps.API.ApproveCoverLetterVersion(ctx, p.deps.ProfileID, versionID)
	if err != nil {
		p.update(func() { p.approveError = ErrorText(err) })
		return nil, err
	}
	if v != nil {
		p.coverLetterVersions.replace(*v)
	}
	return v, nil
}

// Snapshot returns a copy of the profile form state.
func (p *ProfilePage) Snapshot() ProfileSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProfileSnapshot{
		Profile:         p.profile,
		Draft:           p.draft,
		PreferencesText: p.preferencesText,
		Saving:          p.saving,
		SaveError:       p.saveError,
		Notice:          p.notice,
		Recompute:       p.recompute,
		ApproveError:    p.approveError,
	}
}
