package pipeline

import (
	"encoding/json"
	"time"

	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// CycleResult is the outcome of one pipeline cycle, published for the
// reporter to aggregate.
type CycleResult struct {
	Cycle      string `json:"cycle"`
	Success    bool   `json:"success"`
	Items      int    `json:"items"`
	DurationMs int64  `json:"duration_ms"`
}

func publishResult(bus *gochannel.GoChannel, cycle string, success bool, items int, started time.Time) {
	result := CycleResult{
		Cycle:      cycle,
		Success:    success,
		Items:      items,
		DurationMs: time.Since(started).Milliseconds(),
	}

	payload, err := json.Marshal(result)
	if err != nil {
		Logger.Log.Errorf("fail to marshal cycle result: %v", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := bus.Publish(TopicCycleResult, msg); err != nil {
		Logger.Log.Errorf("fail to publish cycle result: %v", err)
	}
}
