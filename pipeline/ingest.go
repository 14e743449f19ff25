package pipeline

import (
	"context"
	"time"

	"github.com/codenewsio/codenews/bot"
	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/monitor"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const enrichBatchSize = 20

type IngestConfig struct {
	Name string
}

// IngestModule runs one full ingest cycle per tick: fetch feeds, enrich
// bodies, gate and score, fold in learned preferences, then dispatch the best
// items to readers.
type IngestModule struct {
	Config IngestConfig

	Monitor    *monitor.Monitor
	Enricher   *monitor.Enricher
	Filter     *filter.ContentFilter
	Engine     *engine.Engine
	Dispatcher *bot.Dispatcher

	EventBus *gochannel.GoChannel
}

func NewIngestModule(config IngestConfig, m *monitor.Monitor, en *monitor.Enricher,
	f *filter.ContentFilter, e *engine.Engine, d *bot.Dispatcher,
	bus *gochannel.GoChannel) *IngestModule {
	return &IngestModule{
		Config:     config,
		Monitor:    m,
		Enricher:   en,
		Filter:     f,
		Engine:     e,
		Dispatcher: d,
		EventBus:   bus,
	}
}

func (m *IngestModule) RunModule(ctx context.Context) error {
	messages, err := m.EventBus.Subscribe(ctx, TopicIngestCycle)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()
		m.runOneCycle(ctx)
	}
	return nil
}

func (m *IngestModule) runOneCycle(ctx context.Context) {
	started := time.Now()

	fetched, err := m.Monitor.FetchAllFeeds(ctx)
	if err != nil {
		Logger.Log.Errorf("ingest cycle: fetch failed: %v", err)
		publishResult(m.EventBus, "ingest", false, fetched, started)
		return
	}

	if err := m.Enricher.EnrichEmptyBodies(enrichBatchSize); err != nil {
		Logger.Log.Errorf("ingest cycle: enrich failed: %v", err)
	}

	if _, err := m.Filter.ProcessNewContent(); err != nil {
		Logger.Log.Errorf("ingest cycle: scoring failed: %v", err)
		publishResult(m.EventBus, "ingest", false, fetched, started)
		return
	}

	if err := m.Engine.RescoreUnnotified(ctx); err != nil {
		Logger.Log.Errorf("ingest cycle: rescoring failed: %v", err)
	}

	dispatched, err := m.Dispatcher.DispatchPending()
	if err != nil {
		Logger.Log.Errorf("ingest cycle: dispatch failed: %v", err)
		publishResult(m.EventBus, "ingest", false, dispatched, started)
		return
	}

	publishResult(m.EventBus, "ingest", true, dispatched, started)
}

func (m *IngestModule) Name() string {
	return m.Config.Name
}
