// Package schedule runs hh.ru imports on a recurring cron schedule.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// MinInterval is the shortest supported repeat interval.
const MinInterval = time.Minute

// Importer starts an import and waits for its task. The vacancies page
// implements it.
type Importer interface {
	StartImport(ctx context.Context, req types.HHImportRequest) error
	WaitTask(ctx context.Context) (tasks.Status, error)
}

// Run is the outcome of one scheduled import.
type Run struct {
	Started  time.Time
	Finished time.Time
	Status   tasks.Status
	Err      error
}

// Scheduler wraps robfig/cron and manages the import loop.
type Scheduler struct {
	cron     *cron.Cron
	importer Importer
	req      types.HHImportRequest
	spec     string // cron spec, e.g. "@every 6h"
	logger   *log.Logger

	// OnRun is called after every finished import, from the run goroutine.
	OnRun func(Run)

	running atomic.Bool
	runs    atomic.Int64
	skipped atomic.Int64

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// EverySpec returns the cron spec repeating every d.
func EverySpec(d time.Duration) (string, error) {
	if d < MinInterval {
		return "", fmt.Errorf("import interval %v is shorter than %v", d, MinInterval)
	}
	return "@every " + d.String(), nil
}

// New creates a Scheduler that imports req on spec. The spec is checked
// when the scheduler starts.
func New(importer Importer, req types.HHImportRequest, spec string, logger *log.Logger) *Scheduler {
	cronLogger := cron.DiscardLogger
	if logger != nil {
		cronLogger = cron.PrintfLogger(logger)
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger), cron.WithChain(cron.Recover(cronLogger))),
		importer: importer,
		req:      req,
		spec:     spec,
		logger:   logger,
	}
}

// Start registers the job and starts the scheduler. It also runs one import
// immediately so the list is fresh without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.req.Validate(); err != nil {
		return fmt.Errorf("invalid import request: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return errors.New("scheduler is stopped")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	if _, err := s.cron.AddFunc(s.spec, func() { s.launch(ctx) }); err != nil {
		s.cancel()
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logf("[scheduler] Cron started, spec: %s", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runImport(ctx)
	}()
	return nil
}

// Stop halts the cron, cancels a running import and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.logf("[scheduler] Cron stopped")
}

// Runs returns how many imports were started.
func (s *Scheduler) Runs() int64 { return s.runs.Load() }

// Skipped returns how many ticks were skipped because an import was running.
func (s *Scheduler) Skipped() int64 { return s.skipped.Load() }

// launch runs a scheduled import unless the scheduler stopped.
func (s *Scheduler) launch(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	s.runImport(ctx)
}

// runImport starts one import and waits for its task. A tick that arrives
// while an import is in progress is skipped.
func (s *Scheduler) runImport(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.skipped.Add(1)
		s.logf("[scheduler] Previous import still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	s.runs.Add(1)
	run := Run{Started: time.Now()}
	s.logf("[scheduler] Import started for %q", s.req.Text)

	if err := s.importer.StartImport(ctx, s.req); err != nil {
		run.Err = err
	} else {
		run.Status, run.Err = s.importer.WaitTask(ctx)
	}
	run.Finished = time.Now()

	switch {
	case ctx.Err() != nil:
		s.logf("[scheduler] Import interrupted: %v", ctx.Err())
	case run.Err != nil:
		s.logf("[scheduler] Import error: %v", run.Err)
	default:
		s.logf("[scheduler] Import complete: task %s", run.Status.TaskID)
	}

	if s.OnRun != nil {
		s.OnRun(run)
	}
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
