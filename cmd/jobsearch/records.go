package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/display"
	"github.com/jonathan/jobsearch-console/internal/editor"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// Record actions.
const (
	actionList   = "list"
	actionAdd    = "add"
	actionEdit   = "edit"
	actionDelete = "delete"
)

func sectionTitle(kind types.RecordKind) string {
	return strings.ToUpper(strings.ReplaceAll(string(kind), "-", " "))
}

func kindNames() string {
	names := make([]string, 0, len(types.RecordKinds()))
	for _, k := range types.RecordKinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func newRecordsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "records <kind> list|add|edit <id>|delete <id>",
		Short: "List and edit profile sections",
		Long:  "List and edit one profile section. Kinds: " + kindNames() + ".",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := types.ParseRecordKind(args[0])
			if !ok {
				return fmt.Errorf("unknown record kind %q (want one of: %s)", args[0], kindNames())
			}

			action := args[1]
			var id int
			switch action {
			case actionList, actionAdd:
				if len(args) != 2 {
					return fmt.Errorf("%s takes no id", action)
				}
			case actionEdit, actionDelete:
				if len(args) != 3 {
					return fmt.Errorf("%s needs a record id", action)
				}
				var err error
				if id, err = parseID(string(kind), args[2]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown action %q", action)
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewProfilePage(a.deps)
			a.mount(ctx, page)

			return dispatchRecords(ctx, a, page, kind, action, id)
		},
	}
}

func dispatchRecords(ctx context.Context, a *app, page *pages.ProfilePage, kind types.RecordKind, action string, id int) error {
	switch kind {
	case types.KindExperiences:
		return runRecords(ctx, a, page.Experiences(), action, id)
	case types.KindProjects:
		return runRecords(ctx, a, page.Projects(), action, id)
	case types.KindAchievements:
		return runRecords(ctx, a, page.Achievements(), action, id)
	case types.KindEducation:
		return runRecords(ctx, a, page.Education(), action, id)
	case types.KindCertificates:
		return runRecords(ctx, a, page.Certificates(), action, id)
	case types.KindLanguages:
		return runRecords(ctx, a, page.Languages(), action, id)
	case types.KindLinks:
		return runRecords(ctx, a, page.Links(), action, id)
	case types.KindSkills:
		return runRecords(ctx, a, page.Skills(), action, id)
	case types.KindResumeVersions:
		return runRecords(ctx, a, page.ResumeVersions(), action, id)
	case types.KindCoverLetterVersions:
		return runRecords(ctx, a, page.CoverLetterVersions(), action, id)
	}
	return fmt.Errorf("unknown record kind %q", kind)
}

func runRecords[T types.Record](ctx context.Context, a *app, recs *pages.Records[T], action string, id int) error {
	recs.Load(ctx)
	res := recs.Snapshot()
	if action == actionList || res.Error != "" {
		display.PrintRecords(a.printer, sectionTitle(recs.Kind()), res, recs.Shape())
		return pageFailed("failed to load "+string(recs.Kind()), res.Error)
	}

	if action == actionAdd {
		return editCard(ctx, a, recs.New())
	}

	record, ok := recs.Find(id)
	if !ok {
		return fmt.Errorf("%s #%d not found", recs.Kind(), id)
	}
	card := recs.Card(record)

	if action == actionDelete {
		if err := card.Delete(ctx); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted %s #%d\n", recs.Kind(), id)
		return nil
	}

	card.Edit()
	return editCard(ctx, a, card)
}

// editCard prompts for the card fields and saves the draft.
func editCard[T any](ctx context.Context, a *app, card *editor.Card[T]) error {
	if err := card.Form().Prompt(a.in, a.out); err != nil {
		return err
	}
	if _, err := card.Save(ctx); err != nil {
		a.printer.PrintError(pages.ErrorText(err))
		return err
	}
	display.PrintCard(a.printer, card)
	return nil
}
