package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/pages"
)

func newRecommendationsCmd(opts *rootOptions) *cobra.Command {
	var (
		recompute  bool
		hideWeak   bool
		showReject bool
	)

	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recs"},
		Short:   "Show ranked vacancies for the profile",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewRecommendationsPage(a.deps)
			a.mount(ctx, page)

			page.SetHideReject(!showReject)
			page.SetHideWeak(hideWeak)
			page.Load(ctx)

			if recompute {
				if err := page.Recompute(ctx); err == nil {
					_, _ = page.WaitTask(ctx)
				}
			}

			snap := page.Snapshot()
			a.printer.PrintRecommendations(snap)
			return pageFailed("recommendations", snap.Items.Error, snap.RecomputeError, snap.Recompute.Error)
		},
	}

	cmd.Flags().BoolVar(&recompute, "recompute", false, "Rebuild recommendations before showing them")
	cmd.Flags().BoolVar(&hideWeak, "hide-weak", false, "Hide weak matches")
	cmd.Flags().BoolVar(&showReject, "show-reject", false, "Show rejected matches even when settings hide them")
	return cmd
}
