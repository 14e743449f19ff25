package pipeline

import (
	"context"
	"sync"
	"time"

	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type SchedulerConfig struct {
	Name string
}

// Scheduler owns all timing in the pipeline. It publishes a tick on each
// job's topic at the configured interval; the stage modules never sleep or
// time themselves.
type Scheduler struct {
	Config SchedulerConfig

	Jobs     []*CycleJob
	EventBus *gochannel.GoChannel
}

func NewScheduler(config SchedulerConfig, jobs []*CycleJob, e *gochannel.GoChannel) *Scheduler {
	return &Scheduler{
		Config:   config,
		Jobs:     jobs,
		EventBus: e,
	}
}

func (s *Scheduler) RunModule(ctx context.Context) error {
	var wg sync.WaitGroup

	for _, job := range s.Jobs {
		wg.Add(1)
		go func(job *CycleJob) {
			defer wg.Done()
			s.runJob(ctx, job)
		}(job)
	}

	wg.Wait()
	return nil
}

// runJob fires immediately on startup, then on every interval boundary. The
// first tick right away means a freshly started service ingests without
// waiting out a full interval.
func (s *Scheduler) runJob(ctx context.Context, job *CycleJob) {
	s.fire(job)

	for {
		timer := time.NewTimer(job.DurationTillNextRun())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(job)
		}
	}
}

func (s *Scheduler) fire(job *CycleJob) {
	msg := message.NewMessage(watermill.NewUUID(), []byte(job.Topic))
	if err := s.EventBus.Publish(job.Topic, msg); err != nil {
		Logger.Log.Errorf("fail to publish cycle tick on %s: %v", job.Topic, err)
		return
	}

	job.UpdateLastAndNextTime()
	job.IncrementRunCount()
	Logger.Log.Infof("scheduler fired %s (run %d)", job.Topic, job.RunCount())
}

func (s *Scheduler) Name() string {
	return s.Config.Name
}
