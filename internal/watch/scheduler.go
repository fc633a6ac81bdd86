package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
)

// Scheduler wraps a gocron scheduler running one periodic task.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	jobID     string
}

// NewScheduler registers task to run every interval. Start must be called
// before the task fires.
func NewScheduler(interval time.Duration, task func(), logger *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, ferrors.ValidationError("interval must be > 0").Build()
	}
	if task == nil {
		return nil, ferrors.ValidationError("task is required").Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create scheduler").Build()
	}
	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create periodic rebuild job").
			WithContext("interval", interval.String()).Build()
	}
	return &Scheduler{scheduler: s, logger: logger, jobID: job.ID().String()}, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Debug("Starting periodic rebuild", slog.String("job_id", s.jobID))
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running task.
func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Warn("Scheduler shutdown failed", logfields.Error(err))
	}
}
