package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/settings"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change local preferences",
	}
	cmd.AddCommand(newSettingsShowCmd(opts), newSettingsSetCmd(opts))
	return cmd
}

func newSettingsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			page := pages.NewSettingsPage(a.deps)
			a.mount(cmd.Context(), page)
			page.Load(cmd.Context())
			a.printer.PrintSettings(page.Snapshot())
			return nil
		},
	}
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var (
		limit         int
		hideReject    bool
		autoRecompute bool
		scoringMode   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; out-of-range values are clamped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewSettingsPage(a.deps)
			a.mount(ctx, page)
			page.Load(ctx)

			flags := cmd.Flags()
			page.Update(func(s *settings.Settings) {
				if flags.Changed("limit") {
					s.RecommendationsLimit = limit
				}
				if flags.Changed("hide-reject") {
					s.HideReject = hideReject
				}
				if flags.Changed("auto-recompute") {
					s.AutoRecomputeAfterProfileSave = autoRecompute
				}
				if flags.Changed("scoring-mode") {
					s.ScoringMode = scoringMode
				}
			})

			_, err = page.Save(ctx)
			a.printer.PrintSettings(page.Snapshot())
			return err
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&limit, "limit", settings.Defaults().RecommendationsLimit, "Recommendations to fetch (10-200)")
	fl.BoolVar(&hideReject, "hide-reject", true, "Hide rejected recommendations")
	fl.BoolVar(&autoRecompute, "auto-recompute", true, "Recompute recommendations after saving the profile")
	fl.StringVar(&scoringMode, "scoring-mode", settings.ScoringBalanced, "Scoring mode")
	return cmd
}
