package display

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobsearch-console/internal/editor"
	"github.com/jonathan/jobsearch-console/internal/format"
	"github.com/jonathan/jobsearch-console/internal/forms"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// input hints that only make sense while typing
var labelHints = []string{" (comma separated)", " (YYYY-MM-DD)", " (JSON)"}

func plainLabel(field forms.Field) string {
	label := field.Label()
	for _, hint := range labelHints {
		label = strings.TrimSuffix(label, hint)
	}
	return label
}

// PrintProfile outputs the profile draft field by field, followed by the
// save and recompute state.
func (p *Printer) PrintProfile(snap pages.ProfileSnapshot) {
	p.PrintError(snap.SaveError)
	p.PrintNotice(snap.Notice)
	p.PrintTask("RECOMPUTE", snap.Recompute)
	p.PrintError(snap.ApproveError)

	if text, ok := resourceState(snap.Profile, func(pr *types.Profile) bool { return pr == nil }, "Profile not found."); ok {
		p.printBox("PROFILE", text)
		return
	}

	draft := snap.Draft
	prefs := snap.PreferencesText
	form := pages.ProfileForm(&draft, &prefs)

	var short, long strings.Builder
	for _, field := range form.Fields {
		value := field.Value()
		if m, ok := field.(forms.Multiline); ok && m.Multiline() {
			if strings.TrimSpace(value) == "" {
				continue
			}
			long.WriteString(fmt.Sprintf("\n%s:\n%s\n", plainLabel(field), value))
			continue
		}
		if value == "" {
			value = format.Placeholder
		}
		short.WriteString(fmt.Sprintf("%s: %s\n", plainLabel(field), value))
	}

	p.printBox(fmt.Sprintf("PROFILE #%d", draft.ID), strings.TrimRight(short.String()+long.String(), "\n"))
}

// PrintRecords outputs one profile sub-resource list using its shape.
func PrintRecords[T any](p *Printer, title string, res pages.Resource[[]T], shape editor.Shape[T]) {
	if text, ok := resourceState(res, func(items []T) bool { return len(items) == 0 }, "Nothing added yet."); ok {
		p.printBox(title, text)
		return
	}

	var sb strings.Builder
	for i, item := range res.Data {
		if id, ok := shape.ID(item); ok {
			sb.WriteString(fmt.Sprintf("#%d  %s\n", id, shape.Title(item)))
		} else {
			sb.WriteString(shape.Title(item) + "\n")
		}
		if summary := shape.Summary(item); summary != "" {
			for _, line := range strings.Split(summary, "\n") {
				sb.WriteString("    " + line + "\n")
			}
		}
		if i < len(res.Data)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintCard outputs a single record card in view mode.
func PrintCard[T any](p *Printer, card *editor.Card[T]) {
	view := card.View()
	if view.Summary == "" {
		p.printBox(view.Title, format.Placeholder)
		return
	}
	p.printBox(view.Title, view.Summary)
}

// PrintSettings outputs the stored settings and the dev task state.
func (p *Printer) PrintSettings(snap pages.SettingsSnapshot) {
	p.PrintError(snap.Error)
	p.PrintNotice(snap.Notice)

	s := snap.Saved
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendations limit:     %d\n", s.RecommendationsLimit))
	sb.WriteString(fmt.Sprintf("Hide rejected:             %s\n", yesNo(s.HideReject)))
	sb.WriteString(fmt.Sprintf("Recompute on profile save: %s\n", yesNo(s.AutoRecomputeAfterProfileSave)))
	sb.WriteString(fmt.Sprintf("Scoring mode:              %s", s.ScoringMode))
	p.printBox("SETTINGS", sb.String())

	p.PrintError(snap.DevError)
	if len(snap.TaskIDs) > 0 {
		var ids strings.Builder
		for _, name := range sortedKeys(snap.TaskIDs) {
			ids.WriteString(fmt.Sprintf("%s: %s\n", name, snap.TaskIDs[name]))
		}
		p.printBox("DEV TASKS", strings.TrimRight(ids.String(), "\n"))
	}
	p.PrintTask("DEV TASK", snap.DevTask)
}
