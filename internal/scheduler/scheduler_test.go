package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/striderquest/StriderQuest_Go/internal/worker"
)

type countingJob struct {
	done chan struct{}
}

func (j *countingJob) Process(ctx context.Context) error {
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestSchedulerStop(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule(time.Hour, job)

	// Stop should return promptly even with a long interval pending
	finished := make(chan struct{})
	go func() {
		sched.Stop()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
