package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/display"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/types"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the candidate profile",
	}
	cmd.AddCommand(
		newProfileShowCmd(opts),
		newProfileEditCmd(opts),
		newProfileSetPreferencesCmd(opts),
	)
	return cmd
}

// withProfile mounts a loaded profile page for the duration of fn.
func withProfile(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app, page *pages.ProfilePage) error) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	page := pages.NewProfilePage(a.deps)
	a.mount(ctx, page)
	page.Load(ctx)

	if msg := page.Snapshot().Profile.Error; msg != "" {
		a.printer.PrintError(msg)
		return pageFailed("failed to load profile", msg)
	}
	return fn(ctx, a, page)
}

func newProfileShowCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, opts, func(_ context.Context, a *app, page *pages.ProfilePage) error {
				a.printer.PrintProfile(page.Snapshot())
				if all {
					printAllRecords(a.printer, page)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also list every profile section")
	return cmd
}

func printAllRecords(p *display.Printer, page *pages.ProfilePage) {
	printSection(p, page.Experiences())
	printSection(p, page.Projects())
	printSection(p, page.Achievements())
	printSection(p, page.Education())
	printSection(p, page.Certificates())
	printSection(p, page.Languages())
	printSection(p, page.Links())
	printSection(p, page.Skills())
	printSection(p, page.ResumeVersions())
	printSection(p, page.CoverLetterVersions())
}

func printSection[T types.Record](p *display.Printer, recs *pages.Records[T]) {
	display.PrintRecords(p, sectionTitle(recs.Kind()), recs.Snapshot(), recs.Shape())
}

func newProfileEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, opts, func(ctx context.Context, a *app, page *pages.ProfilePage) error {
				snap := page.Snapshot()
				draft := snap.Draft
				prefs := snap.PreferencesText

				if err := pages.ProfileForm(&draft, &prefs).Prompt(a.in, a.out); err != nil {
					return err
				}
				page.Change(func(d *types.Profile) { *d = draft })
				page.SetPreferencesText(prefs)

				return saveProfile(ctx, a, page)
			})
		},
	}
}

func newProfileSetPreferencesCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set-preferences",
		Short: "Replace the team preferences JSON document",
		Long:  "Replace the team preferences document with the JSON object in --file (use - for stdin). An empty file clears it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, opts, func(ctx context.Context, a *app, page *pages.ProfilePage) error {
				var (
					data []byte
					err  error
				)
				if file == "-" {
					data, err = io.ReadAll(a.in)
				} else {
					data, err = os.ReadFile(file)
				}
				if err != nil {
					return fmt.Errorf("failed to read preferences: %w", err)
				}

				page.SetPreferencesText(string(data))
				return saveProfile(ctx, a, page)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the JSON document, or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// saveProfile saves the draft, waits for a follow-up recompute and prints
// the result.
func saveProfile(ctx context.Context, a *app, page *pages.ProfilePage) error {
	if err := page.Save(ctx); err == nil && page.Snapshot().Recompute.Running() {
		_, _ = page.WaitTask(ctx)
	}

	snap := page.Snapshot()
	a.printer.PrintProfile(snap)
	return pageFailed("failed to save profile", snap.SaveError)
}
