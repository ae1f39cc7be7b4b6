// Package scheduler runs the small set of long-running periodic jobs the
// governance core needs: the health heartbeat and the daily snapshot
// rollover.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named, periodically-run unit of work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler wraps a cron engine with structured logging around each run.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a scheduler with second-level cron precision.
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.Named("scheduler"),
	}
}

// Start starts running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop waits for in-flight jobs to finish and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// AddJob registers job against a six-field cron schedule expression whose
// first field is seconds.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", job.Name()), zap.Error(err))
			return
		}
		s.logger.Debug("scheduled job completed", zap.String("job", job.Name()))
	})
	if err != nil {
		return err
	}
	s.logger.Info("job registered", zap.String("schedule", schedule), zap.String("job", job.Name()))
	return nil
}

// RunNow executes job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.logger.Info("running job immediately", zap.String("job", job.Name()))
	return job.Run()
}
