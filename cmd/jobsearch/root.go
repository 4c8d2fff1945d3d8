package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-console/internal/api"
	"github.com/jonathan/jobsearch-console/internal/config"
	"github.com/jonathan/jobsearch-console/internal/display"
	"github.com/jonathan/jobsearch-console/internal/format"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
)

// redisKeyPrefix namespaces the settings keys in a shared Redis.
const redisKeyPrefix = "jobsearch:"

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	apiURL       string
	profileID    int
	configPath   string
	settingsPath string
	redisURL     string
	locale       string
	verbose      bool

	pollRetryLimit int
	pollMaxWait    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jobsearch",
		Short:         "Job search console",
		Long:          "Job search console browses imported vacancies, runs hh.ru imports, shows profile recommendations and edits the candidate profile against the job search backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.apiURL, "api-url", "", "Backend origin (overrides JOBSEARCH_API_BASE_URL)")
	f.IntVar(&opts.profileID, "profile", 0, "Profile ID (default 1)")
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	f.StringVar(&opts.settingsPath, "settings", "", "Path to the local settings file")
	f.StringVar(&opts.redisURL, "redis-url", "", "Share settings through Redis instead of a local file")
	f.StringVar(&opts.locale, "locale", string(format.LocaleRU), "Date locale (ru-RU or en-US)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every API request")
	f.IntVar(&opts.pollRetryLimit, "poll-retry-limit", config.DefaultPollRetryLimit, "Transient task status failures tolerated; 0 fails on the first")
	f.DurationVar(&opts.pollMaxWait, "poll-max-wait", config.DefaultPollMaxWait, "Give up on a task after this long; 0 waits until interrupted")

	cmd.AddCommand(
		newVacanciesCmd(opts),
		newVacancyCmd(opts),
		newImportCmd(opts),
		newRecommendationsCmd(opts),
		newProfileCmd(opts),
		newRecordsCmd(opts),
		newApproveCmd(opts),
		newSettingsCmd(opts),
		newDevCmd(opts),
	)
	return cmd
}

// resolveConfig applies flags over the config file over the environment
// over the built-in defaults.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	cfg := envCfg.MergeWithDefaults(config.Default())

	if opts.configPath != "" {
		fileCfg, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIBaseURL = opts.apiURL
	}
	if flags.Changed("profile") {
		cfg.ProfileID = opts.profileID
	}
	if flags.Changed("settings") {
		cfg.SettingsPath = opts.settingsPath
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = opts.redisURL
	}
	if flags.Changed("poll-retry-limit") {
		cfg.PollRetryLimit = config.Int(opts.pollRetryLimit)
	}
	if flags.Changed("poll-max-wait") {
		cfg.PollMaxWait = config.DurationPtr(opts.pollMaxWait)
	}
	cfg.Verbose = cfg.Verbose || opts.verbose

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// app holds what one command invocation needs.
type app struct {
	cfg     config.Config
	deps    pages.Deps
	printer *display.Printer
	in      *bufio.Reader
	out     io.Writer

	closers []func()
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	locale := format.Locale(opts.locale)
	if locale != format.LocaleRU && locale != format.LocaleEN {
		return nil, fmt.Errorf("unsupported locale %q", opts.locale)
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	clientOpts := &api.Options{Timeout: time.Duration(cfg.RequestTimeout)}
	if cfg.Verbose {
		clientOpts.Logger = logger
	}
	endpoints := api.NewEndpoints(api.NewClient(cfg.BaseURL(), clientOpts), cfg.ProfileID)

	a := &app{
		cfg:     cfg,
		printer: display.NewPrinter(cmd.OutOrStdout()),
		in:      bufio.NewReader(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
	}
	a.printer.Locale = locale

	store, err := a.openSettingsStore(cmd.Context())
	if err != nil {
		return nil, err
	}

	a.deps = pages.Deps{
		API:      endpoints,
		Settings: settings.NewService(store, logger),
		Poller: tasks.NewPoller(endpoints, tasks.Policy{
			Interval:   time.Duration(cfg.PollInterval),
			RetryLimit: cfg.RetryLimit(),
			MaxBackoff: time.Duration(cfg.PollMaxBackoff),
			MaxWait:    cfg.MaxWait(),
		}, logger),
		Logger:    logger,
		ProfileID: cfg.ProfileID,
	}
	return a, nil
}

func (a *app) openSettingsStore(ctx context.Context) (settings.Store, error) {
	if a.cfg.RedisURL == "" {
		return settings.NewFileStore(a.cfg.SettingsPath), nil
	}

	client, err := settings.NewRedisClient(ctx, a.cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	return settings.NewRedisStore(client, redisKeyPrefix), nil
}

// mount closes page when ctx is cancelled or the command returns.
func (a *app) mount(ctx context.Context, page interface{ Close() }) {
	stop := context.AfterFunc(ctx, page.Close)
	a.closers = append(a.closers, func() {
		stop()
		page.Close()
	})
}

// Close releases everything the command opened, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// pageFailed turns the first non-empty banner into the command error.
func pageFailed(what string, banners ...string) error {
	for _, b := range banners {
		if b != "" {
			return fmt.Errorf("%s: %s", what, b)
		}
	}
	return nil
}
