package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/display"
	"github.com/jonathan/jobsearch-console/internal/pages"
)

func newApproveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <resume|cover-letter> <id>",
		Short: "Approve a generated document version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if kind != pages.DocumentResume && kind != pages.DocumentCoverLetter {
				return fmt.Errorf("document kind must be %q or %q", pages.DocumentResume, pages.DocumentCoverLetter)
			}
			versionID, err := parseID(kind+" version", args[1])
			if err != nil {
				return err
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewProfilePage(a.deps)
			a.mount(ctx, page)

			if kind == pages.DocumentResume {
				v, err := page.ApproveResumeVersion(ctx, versionID)
				if err == nil && v != nil {
					display.PrintCard(a.printer, page.ResumeVersions().Card(*v))
				}
			} else {
				v, err := page.ApproveCoverLetterVersion(ctx, versionID)
				if err == nil && v != nil {
					display.PrintCard(a.printer, page.CoverLetterVersions().Card(*v))
				}
			}

			snap := page.Snapshot()
			a.printer.PrintError(snap.ApproveError)
			return pageFailed("approve failed", snap.ApproveError)
		},
	}
}
