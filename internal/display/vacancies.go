package display

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobsearch-console/internal/format"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// PrintVacancies outputs the filtered vacancy list and the import state.
func (p *Printer) PrintVacancies(snap pages.VacanciesSnapshot) {
	p.PrintError(snap.ImportError)
	p.PrintTask("IMPORT", snap.Import)

	title := "VACANCIES"
	if snap.Query != "" {
		title = fmt.Sprintf("VACANCIES matching %q", snap.Query)
	}

	if text, ok := resourceState(snap.Vacancies, func(v []types.Vacancy) bool { return len(v) == 0 },
		"No vacancies yet. Run an import to fetch some."); ok {
		p.printBox(title, text)
		return
	}
	if len(snap.Visible) == 0 {
		p.printBox(title, "Nothing matches the search.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Showing %d of %d\n\n", len(snap.Visible), len(snap.Vacancies.Data)))
	for i, v := range snap.Visible {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", v.ID, v.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s\n",
			format.SafeText(v.CompanyName, format.Placeholder),
			format.SafeText(v.Location, format.Placeholder)))
		sb.WriteString(fmt.Sprintf("    %s", format.Salary(format.VacancySalary(v), p.Salary)))
		if i < len(snap.Visible)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox(title, sb.String())
}

// PrintVacancyDetails outputs a vacancy, its match explanation and any
// generated document.
func (p *Printer) PrintVacancyDetails(snap pages.DetailsSnapshot) {
	p.printVacancy(snap.Vacancy)
	p.printTailoring(snap)

	p.PrintError(snap.GenerateError)
	p.PrintTask("GENERATION", snap.Generate)
	if snap.Document.Loaded || snap.Document.Loading {
		p.PrintDocument(snap.Document)
	}
}

func (p *Printer) printVacancy(res pages.Resource[*types.Vacancy]) {
	if text, ok := resourceState(res, func(v *types.Vacancy) bool { return v == nil }, "Vacancy not found."); ok {
		p.printBox("VACANCY", text)
		return
	}

	v := res.Data
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", format.SafeText(v.CompanyName, format.Placeholder)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", format.SafeText(v.Location, format.Placeholder)))
	sb.WriteString(fmt.Sprintf("Salary:   %s\n", format.Salary(format.VacancySalary(*v), p.Salary)))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", v.Status))
	if v.URL != nil && *v.URL != "" {
		sb.WriteString(fmt.Sprintf("Link:     %s\n", *v.URL))
	}
	if !v.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Updated:  %s\n", format.Time(v.UpdatedAt, p.Locale, p.Location)))
	}

	sb.WriteString("\n")
	if v.Description == nil || strings.TrimSpace(*v.Description) == "" {
		sb.WriteString("No description.")
	} else {
		sb.WriteString(format.PlainText(*v.Description))
	}

	p.printBox(fmt.Sprintf("#%d  %s", v.ID, v.Title), sb.String())
}

func (p *Printer) printTailoring(snap pages.DetailsSnapshot) {
	title := "MATCH"
	if snap.Refreshing {
		title = "MATCH (refreshing)"
	}

	if text, ok := resourceState(snap.Tailoring, func(t *types.Tailoring) bool { return t == nil },
		"No match explanation yet."); ok {
		p.printBox(title, text)
		return
	}

	view := snap.View
	if !view.HasSections() {
		p.printBox(title, view.Raw)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:   %s\n", format.Confidence(view.Score)))
	verdict := view.Verdict
	if verdict == "" {
		verdict = format.Placeholder
	}
	sb.WriteString(fmt.Sprintf("Verdict: %s\n\n", verdict))

	list(&sb, "Keywords to add", view.KeywordsToAdd, maxItemsToShow)
	list(&sb, "Missing must-have", view.MissingMustHave, maxItemsToShow)
	list(&sb, "Missing nice-to-have", view.MissingNiceToHave, maxItemsToShow)
	list(&sb, "Cover letter points", view.CoverLetterPoints, maxItemsToShow)

	if len(view.Evidence) > 0 {
		evidence := make([]string, 0, len(view.Evidence))
		for _, e := range view.Evidence {
			evidence = append(evidence, fmt.Sprintf("%s (%s)", e.Text, format.Confidence(e.Confidence)))
		}
		list(&sb, "Evidence", evidence, maxItemsToShow)
	}

	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintDocument outputs a generated resume or cover letter.
func (p *Printer) PrintDocument(res pages.Resource[*types.DocumentByTask]) {
	if text, ok := resourceState(res, func(d *types.DocumentByTask) bool { return d == nil }, "No document produced."); ok {
		p.printBox("DOCUMENT", text)
		return
	}

	doc := res.Data
	switch {
	case doc.ResumeVersion != nil:
		v := doc.ResumeVersion
		p.printBox(fmt.Sprintf("RESUME VERSION #%d (%s)", v.ID, v.Status), v.ContentText)
	case doc.CoverLetterVersion != nil:
		v := doc.CoverLetterVersion
		content := v.ContentText
		if v.Subject != nil && *v.Subject != "" {
			content = fmt.Sprintf("Subject: %s\n\n%s", *v.Subject, content)
		}
		p.printBox(fmt.Sprintf("COVER LETTER VERSION #%d (%s)", v.ID, v.Status), content)
	default:
		p.printBox("DOCUMENT", fmt.Sprintf("Task %s finished without a %s document.", doc.TaskID, doc.DocumentType))
	}
}

// PrintRecommendations outputs the visible recommendations.
func (p *Printer) PrintRecommendations(snap pages.RecommendationsSnapshot) {
	p.PrintError(snap.RecomputeError)
	p.PrintTask("RECOMPUTE", snap.Recompute)

	title := fmt.Sprintf("RECOMMENDATIONS (limit %d)", snap.Settings.RecommendationsLimit)
	if text, ok := resourceState(snap.Items, func(r []types.Recommendation) bool { return len(r) == 0 },
		"No recommendations yet. Run a recompute."); ok {
		p.printBox(title, text)
		return
	}

	var sb strings.Builder
	hidden := len(snap.Items.Data) - len(snap.Visible)
	sb.WriteString(fmt.Sprintf("Showing %d of %d", len(snap.Visible), len(snap.Items.Data)))
	if hidden > 0 {
		sb.WriteString(fmt.Sprintf(" (%d hidden by verdict)", hidden))
	}
	sb.WriteString("\n")

	for _, r := range snap.Visible {
		score := r.FinalScore
		sb.WriteString(fmt.Sprintf("\n#%d  %s\n", r.ID, r.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s\n",
			format.SafeText(r.CompanyName, format.Placeholder),
			format.SafeText(r.Location, format.Placeholder)))
		sb.WriteString(fmt.Sprintf("    Score %s · %s\n", format.Confidence(&score), r.Verdict))
	}

	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}
