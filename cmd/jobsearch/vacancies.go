package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/schedule"
	"github.com/jonathan/jobsearch-console/internal/types"
)

func newVacanciesCmd(opts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "vacancies",
		Short: "List imported vacancies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewVacanciesPage(a.deps)
			a.mount(ctx, page)

			page.Load(ctx)
			page.SetQuery(query)

			snap := page.Snapshot()
			a.printer.PrintVacancies(snap)
			return pageFailed("failed to load vacancies", snap.Vacancies.Error)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by title, company or location")
	return cmd
}

func parseID(what, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func newVacancyCmd(opts *rootOptions) *cobra.Command {
	var generate string

	cmd := &cobra.Command{
		Use:   "vacancy <id>",
		Short: "Show a vacancy with its match explanation",
		Long:  "Show one vacancy and how well the profile matches it. With --generate, a tailored resume or cover letter draft is produced for the vacancy.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vacancyID, err := parseID("vacancy", args[0])
			if err != nil {
				return err
			}
			if generate != "" && generate != pages.DocumentResume && generate != pages.DocumentCoverLetter {
				return fmt.Errorf("--generate must be %q or %q", pages.DocumentResume, pages.DocumentCoverLetter)
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewVacancyDetailsPage(a.deps)
			a.mount(ctx, page)

			page.Load(ctx, vacancyID)

			if generate != "" {
				if err := page.GenerateDocument(ctx, generate); err == nil {
					_, _ = page.WaitTask(ctx)
				}
			}

			snap := page.Snapshot()
			a.printer.PrintVacancyDetails(snap)
			return pageFailed("vacancy", snap.Vacancy.Error, snap.Tailoring.Error, snap.GenerateError, snap.Generate.Error, snap.Document.Error)
		},
	}

	cmd.Flags().StringVar(&generate, "generate", "", "Generate a draft document: resume or cover-letter")
	return cmd
}

// importFlags are the hh.ru search parameters.
type importFlags struct {
	text         string
	area         int
	schedule     string
	experience   string
	salaryFrom   int
	salaryTo     int
	currency     string
	perPage      int
	pagesLimit   int
	fetchDetails bool
	extra        map[string]string
	every        time.Duration
}

// request builds the import request; optional fields are set only when
// their flag was given.
func (f *importFlags) request(cmd *cobra.Command) types.HHImportRequest {
	req := types.NewHHImportRequest(f.text)
	req.PerPage = f.perPage
	req.PagesLimit = f.pagesLimit
	req.FetchDetails = f.fetchDetails

	flags := cmd.Flags()
	if flags.Changed("area") {
		req.Area = &f.area
	}
	if flags.Changed("schedule") {
		req.Schedule = &f.schedule
	}
	if flags.Changed("experience") {
		req.Experience = &f.experience
	}
	if flags.Changed("salary-from") {
		req.SalaryFrom = &f.salaryFrom
	}
	if flags.Changed("salary-to") {
		req.SalaryTo = &f.salaryTo
	}
	if flags.Changed("currency") {
		req.Currency = &f.currency
	}
	if len(f.extra) > 0 {
		req.ExtraParams = make(map[string]any, len(f.extra))
		for k, v := range f.extra {
			req.ExtraParams[k] = v
		}
	}
	return req
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	f := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import vacancies from hh.ru",
		Long:  "Start an hh.ru import on the backend and wait for it to finish. With --every the import repeats on a schedule until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := f.request(cmd)

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page := pages.NewVacanciesPage(a.deps)
			a.mount(ctx, page)

			if f.every > 0 {
				return runScheduledImport(cmd, a, page, req, f.every)
			}

			if err := page.StartImport(ctx, req); err == nil {
				_, _ = page.WaitTask(ctx)
			}

			snap := page.Snapshot()
			a.printer.PrintVacancies(snap)
			return pageFailed("import", snap.ImportError, snap.Import.Error)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.text, "text", "t", "", "Search text (required)")
	fl.IntVar(&f.area, "area", 0, "hh.ru area id")
	fl.StringVar(&f.schedule, "schedule", "", "hh.ru schedule filter")
	fl.StringVar(&f.experience, "experience", "", "hh.ru experience filter")
	fl.IntVar(&f.salaryFrom, "salary-from", 0, "Minimum salary")
	fl.IntVar(&f.salaryTo, "salary-to", 0, "Maximum salary")
	fl.StringVar(&f.currency, "currency", "", "Salary currency")
	fl.IntVar(&f.perPage, "per-page", types.DefaultImportPerPage, "Results per page (1-100)")
	fl.IntVar(&f.pagesLimit, "pages-limit", types.DefaultImportPagesLimit, "Pages to fetch (1-20)")
	fl.BoolVar(&f.fetchDetails, "fetch-details", true, "Fetch full vacancy descriptions")
	fl.StringToStringVar(&f.extra, "extra", nil, "Extra hh.ru query parameters (key=value)")
	fl.DurationVar(&f.every, "every", 0, "Repeat the import at this interval, e.g. 6h")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func runScheduledImport(cmd *cobra.Command, a *app, page *pages.VacanciesPage, req types.HHImportRequest, every time.Duration) error {
	spec, err := schedule.EverySpec(every)
	if err != nil {
		return err
	}

	s := schedule.New(page, req, spec, a.deps.Logger)
	s.OnRun = func(schedule.Run) {
		a.printer.PrintVacancies(page.Snapshot())
	}

	ctx := cmd.Context()
	if err := s.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Importing %q every %v, press Ctrl+C to stop\n", req.Text, every)

	<-ctx.Done()
	s.Stop()
	return nil
}
