package bot

import (
	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/monitor"
	Logger "github.com/codenewsio/codenews/utils/log"
)

// NotificationBudget rations dispatches within the current hour. Allow
// consumes one slot; Refund gives a slot back when the push never went out.
type NotificationBudget interface {
	Allow() (bool, error)
	Refund() error
	PerHour() int
}

// Dispatcher pushes scored content to readers under the hourly notification
// budget. Items that exceed the budget simply stay unnotified and compete
// again next cycle.
type Dispatcher struct {
	Monitor  *monitor.Monitor
	Filter   *filter.ContentFilter
	Notifier Notifier
	Budget   NotificationBudget

	minScore float64
}

func NewDispatcher(m *monitor.Monitor, f *filter.ContentFilter, n Notifier, budget NotificationBudget, cfg *config.AppConfig) *Dispatcher {
	return &Dispatcher{
		Monitor:  m,
		Filter:   f,
		Notifier: n,
		Budget:   budget,
		minScore: cfg.InitialRelevanceThreshold,
	}
}

// DispatchPending pushes the best unnotified items, highest score first, until
// the budget runs out. Only successfully pushed items are marked notified, so
// a delivery failure retries next cycle.
func (d *Dispatcher) DispatchPending() (int, error) {
	candidates, err := d.Monitor.GetUnnotified(d.minScore, d.Budget.PerHour())
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	pushedIds := []int64{}
	for i := range candidates {
		allowed, err := d.Budget.Allow()
		if err != nil {
			Logger.Log.Errorf("fail to check notification budget: %v", err)
			break
		}
		if !allowed {
			Logger.Log.Infof("notification budget exhausted, %d items deferred", len(candidates)-i)
			break
		}

		if err := d.pushOne(&candidates[i]); err != nil {
			// The slot was consumed but nothing went out, give it back.
			if refundErr := d.Budget.Refund(); refundErr != nil {
				Logger.Log.Errorf("fail to refund notification slot: %v", refundErr)
			}
			continue
		}
		pushedIds = append(pushedIds, candidates[i].Id)
	}

	if err := d.Monitor.MarkAsNotified(pushedIds); err != nil {
		return len(pushedIds), err
	}

	Logger.Log.Infof("dispatched %d notifications", len(pushedIds))
	return len(pushedIds), nil
}

func (d *Dispatcher) pushOne(content *model.Content) error {
	summary := d.Filter.GenerateSummary(content)
	return d.Notifier.PushContent(content, summary)
}
