package pipeline

import (
	"sync"
	"time"
)

// CycleJob defines one recurring pipeline cycle the scheduler manages: which
// topic to tick and how often. This struct is thread-safe.
type CycleJob struct {
	m sync.RWMutex

	// The last time this job fired.
	lastRun time.Time

	// The next time this job should fire.
	nextRun time.Time

	// Topic the cycle tick is published on.
	Topic string

	// Interval between two ticks.
	EveryMs int64

	// How many times this job has been scheduled on the event bus.
	runCount int64
}

func NewCycleJob(topic string, everyMs int64) *CycleJob {
	return &CycleJob{
		m:       sync.RWMutex{},
		lastRun: time.Time{},
		nextRun: time.Time{},
		Topic:   topic,
		EveryMs: everyMs,
	}
}

func (j *CycleJob) Interval() time.Duration {
	return time.Duration(j.EveryMs) * time.Millisecond
}

func (j *CycleJob) HasRunBefore() bool {
	j.m.RLock()
	defer j.m.RUnlock()

	return !j.lastRun.IsZero()
}

func (j *CycleJob) IncrementRunCount() {
	j.m.Lock()
	defer j.m.Unlock()
	j.runCount += 1
}

func (j *CycleJob) RunCount() int64 {
	j.m.RLock()
	defer j.m.RUnlock()
	return j.runCount
}

// DurationTillNextRun returns how long the scheduler should wait before firing
// this job again. A job that never ran fires after one full interval.
func (j *CycleJob) DurationTillNextRun() time.Duration {
	if !j.HasRunBefore() {
		return j.Interval()
	}

	j.m.RLock()
	defer j.m.RUnlock()

	return time.Until(j.nextRun)
}

func (j *CycleJob) UpdateLastAndNextTime() {
	j.m.Lock()
	defer j.m.Unlock()

	j.lastRun = time.Now()
	j.nextRun = j.lastRun.Add(j.Interval())
}
