package scheduler_test

import (
	"errors"
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingJob struct {
	name string
	runs int
	err  error
}

func (j *countingJob) Name() string { return j.name }
func (j *countingJob) Run() error {
	j.runs++
	return j.err
}

func TestAddJobRejectsInvalidSchedule(t *testing.T) {
	s := scheduler.New(zap.NewNop())

	err := s.AddJob("not a cron expression", &countingJob{name: "bad"})

	assert.Error(t, err)
}

func TestRunNowExecutesJobImmediatelyRegardlessOfSchedule(t *testing.T) {
	s := scheduler.New(zap.NewNop())
	job := &countingJob{name: "heartbeat"}

	err := s.RunNow(job)

	require.NoError(t, err)
	assert.Equal(t, 1, job.runs)
}

func TestRunNowPropagatesJobError(t *testing.T) {
	s := scheduler.New(zap.NewNop())
	job := &countingJob{name: "failing", err: errors.New("boom")}

	err := s.RunNow(job)

	assert.Error(t, err)
}

func TestAddJobRunsOnItsSchedule(t *testing.T) {
	s := scheduler.New(zap.NewNop())
	job := &countingJob{name: "every-second"}

	require.NoError(t, s.AddJob("* * * * * *", job))
	s.Start()
	defer s.Stop()

	time.Sleep(1200 * time.Millisecond)

	assert.GreaterOrEqual(t, job.runs, 1)
}
