package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/pages"
)

func newDevCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Maintenance calls against the backend dev endpoints",
	}
	cmd.AddCommand(
		newDevTaskCmd(opts, "recompute-all", "Backfill, embed and recompute recommendations for the profile", (*pages.SettingsPage).RecomputeAll),
		newDevTaskCmd(opts, "backfill", "Normalize the legacy profile text into profile sections", (*pages.SettingsPage).Backfill),
	)
	return cmd
}

func newDevTaskCmd(opts *rootOptions, use, short string, start func(*pages.SettingsPage, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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

			if err := start(page, ctx); err == nil {
				_, _ = page.WaitTask(ctx)
			}

			snap := page.Snapshot()
			a.printer.PrintSettings(snap)
			return pageFailed(use, snap.DevError, snap.DevTask.Error)
		},
	}
}
