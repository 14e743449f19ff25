package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/DataDog/datadog-go/statsd"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ReporterConfig struct {
	Name string
}

// Reporter listens for cycle results and aggregates them into statsd metrics
// for monitoring.
type Reporter struct {
	Config ReporterConfig

	Statsd   *statsd.Client
	EventBus *gochannel.GoChannel
}

func NewReporter(config ReporterConfig, statsd *statsd.Client, e *gochannel.GoChannel) *Reporter {
	return &Reporter{
		Config:   config,
		Statsd:   statsd,
		EventBus: e,
	}
}

func (r *Reporter) reportCycleResult(result *CycleResult) {
	tags := []string{
		fmt.Sprintf("cycle:%s", result.Cycle),
		fmt.Sprintf("success:%t", result.Success),
	}

	if err := r.Statsd.Incr(MetricCycleCounter, tags, 1); err != nil {
		Logger.Log.Infoln("cannot report cycle counter")
	}
	if err := r.Statsd.Count(MetricCycleItems, int64(result.Items), tags, 1); err != nil {
		Logger.Log.Infoln("cannot report cycle items")
	}
	if err := r.Statsd.Gauge(MetricCycleDurationMs, float64(result.DurationMs), tags, 1); err != nil {
		Logger.Log.Infoln("cannot report cycle duration")
	}
}

func (r *Reporter) RunModule(ctx context.Context) error {
	messages, err := r.EventBus.Subscribe(ctx, TopicCycleResult)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		result := CycleResult{}
		if err := json.Unmarshal(msg.Payload, &result); err != nil {
			Logger.Log.Errorf("fail to decode cycle result: %v", err)
			continue
		}
		r.reportCycleResult(&result)
	}
	return nil
}

func (r *Reporter) Name() string {
	return r.Config.Name
}
