// Package scheduler runs the background jobs that keep the site's content
// fresh: daily article generation, cache cleanup, Wordle refresh and health
// checks. One Scheduler is created at startup and passed to whoever needs it.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

var (
	ErrUnknownJob     = errors.New("unknown job")
	ErrJobRunning     = errors.New("job is already running")
	ErrAlreadyStarted = errors.New("scheduler already started")
)

// Action is the work a job performs.
type Action func(ctx context.Context) error

type Job struct {
	Name     string
	Schedule Schedule
	Action   Action
	// MaxAge is how long the job may go without a successful run before
	// health reports it degraded. Zero means twice the schedule interval.
	MaxAge time.Duration
	// RunOnStart runs the job as soon as the scheduler starts.
	RunOnStart bool
}

func (j Job) maxAge() time.Duration {
	if j.MaxAge > 0 {
		return j.MaxAge
	}
	return 2 * j.Schedule.Interval()
}

type jobState struct {
	job          Job
	next         time.Time
	lastRun      time.Time
	lastSuccess  time.Time
	lastDuration time.Duration
	lastErr      string
	runs         int
	failures     int
	running      bool
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTickInterval sets how often due jobs are checked for.
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

type Scheduler struct {
	now  func() time.Time
	tick time.Duration

	mu        sync.Mutex
	jobs      map[string]*jobState
	order     []string
	started   bool
	startedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		now:    time.Now,
		tick:   time.Second,
		jobs:   make(map[string]*jobState),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Schedule == nil || job.Action == nil {
		return fmt.Errorf("job needs a name, a schedule and an action")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("job %q already registered", job.Name)
	}
	st := &jobState{job: job}
	if s.started {
		st.next = job.Schedule.Next(s.now())
	}
	s.jobs[job.Name] = st
	s.order = append(s.order, job.Name)
	return nil
}

// Start schedules every job and launches the ones marked RunOnStart.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return fmt.Errorf("scheduler was stopped and cannot be restarted")
	}
	s.started = true
	now := s.now()
	s.startedAt = now

	var immediate []*jobState
	for _, name := range s.order {
		st := s.jobs[name]
		st.next = st.job.Schedule.Next(now)
		if st.job.RunOnStart {
			immediate = append(immediate, st)
		}
	}
	s.mu.Unlock()

	slog.Info("starting scheduler", "jobs", len(s.order), "tick", s.tick.String())

	for _, st := range immediate {
		s.launch(st)
	}

	s.wg.Add(1)
	go s.run()
	return nil
}

// Stop cancels running jobs and waits up to timeout for them to return. The
// scheduler reports itself stopped even when a job outlives the timeout.
func (s *Scheduler) Stop(timeout time.Duration) error {
	slog.Info("stopping scheduler")
	s.cancel()

	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("scheduler stopped")
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("scheduler shutdown timed out after %s", timeout)
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runDue()
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runDue() {
	now := s.now()

	s.mu.Lock()
	var due []*jobState
	for _, name := range s.order {
		st := s.jobs[name]
		if !now.Before(st.next) {
			due = append(due, st)
		}
	}
	s.mu.Unlock()

	for _, st := range due {
		s.launch(st)
	}
}

// launch starts st in its own goroutine unless it is still running from an
// earlier tick, in which case this tick is skipped.
func (s *Scheduler) launch(st *jobState) {
	s.mu.Lock()
	st.next = st.job.Schedule.Next(s.now())
	if st.running {
		s.mu.Unlock()
		slog.Warn("skipping job, previous run still in progress", "job", st.job.Name)
		return
	}
	st.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.execute(s.ctx, st)
	}()
}

// execute runs the job action. The caller must have set st.running.
func (s *Scheduler) execute(ctx context.Context, st *jobState) error {
	name := st.job.Name
	slog.Info("running job", "job", name)

	start := s.now()
	err := runAction(ctx, st.job.Action)
	duration := s.now().Sub(start)

	s.mu.Lock()
	st.running = false
	st.runs++
	st.lastRun = start
	st.lastDuration = duration
	if err != nil {
		st.failures++
		st.lastErr = err.Error()
	} else {
		st.lastErr = ""
		st.lastSuccess = start
	}
	s.mu.Unlock()

	if err != nil {
		slog.Error("job failed", "job", name, "duration", duration.String(), "error", err)
		return err
	}
	slog.Info("job completed", "job", name, "duration", duration.String())
	return nil
}

func runAction(ctx context.Context, action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return action(ctx)
}

// Trigger runs the named job now, in the caller's goroutine, and returns
// its error. The regular schedule is left as it is.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	s.mu.Lock()
	st, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if st.running {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrJobRunning, name)
	}
	st.running = true
	s.mu.Unlock()

	return s.execute(ctx, st)
}

func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *Scheduler) Status() model.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := model.SchedulerStatus{
		Running:   s.started,
		StartedAt: s.startedAt,
		Jobs:      make([]model.JobStatus, 0, len(s.order)),
	}
	for _, name := range s.order {
		st := s.jobs[name]
		status.Jobs = append(status.Jobs, model.JobStatus{
			Name:           name,
			Schedule:       st.job.Schedule.String(),
			Interval:       st.job.Schedule.Interval().String(),
			NextRun:        st.next,
			LastRun:        st.lastRun,
			LastSuccess:    st.lastSuccess,
			LastDurationMS: st.lastDuration.Milliseconds(),
			LastError:      st.lastErr,
			Runs:           st.runs,
			Failures:       st.failures,
			Running:        st.running,
		})
	}
	return status
}

// Health is ok when every job has succeeded within its max age. Jobs that
// have not run yet are given one max age from startup.
func (s *Scheduler) Health() model.HealthReport {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	report := model.HealthReport{
		Status:    model.HealthOK,
		CheckedAt: now,
		Jobs:      make([]model.JobHealth, 0, len(s.order)),
	}
	if !s.started {
		report.Status = model.HealthDegraded
	}

	for _, name := range s.order {
		st := s.jobs[name]
		maxAge := st.job.maxAge()
		h := model.JobHealth{Name: name, OK: true}

		switch {
		case !st.lastSuccess.IsZero():
			if age := now.Sub(st.lastSuccess); age > maxAge {
				h.OK = false
				h.Reason = fmt.Sprintf("last success %s ago, limit %s", age.Truncate(time.Second), maxAge)
			}
		case !s.started:
			h.OK = false
			h.Reason = "scheduler not running"
		case now.Sub(s.startedAt) > maxAge:
			h.OK = false
			h.Reason = "no successful run since start"
		default:
			h.Reason = "waiting for first run"
		}

		if !h.OK {
			if st.lastErr != "" {
				h.Reason += ": " + st.lastErr
			}
			report.Status = model.HealthDegraded
		}
		report.Jobs = append(report.Jobs, h)
	}
	return report
}
