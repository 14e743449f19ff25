package pipeline

import (
	"context"
	"time"

	"github.com/codenewsio/codenews/monitor"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type CleanupConfig struct {
	Name string

	RetentionDays int
}

// CleanupModule prunes expired content on every cleanup tick.
type CleanupModule struct {
	Config CleanupConfig

	DB       *gorm.DB
	EventBus *gochannel.GoChannel
}

func NewCleanupModule(config CleanupConfig, db *gorm.DB, bus *gochannel.GoChannel) *CleanupModule {
	return &CleanupModule{
		Config:   config,
		DB:       db,
		EventBus: bus,
	}
}

func (m *CleanupModule) RunModule(ctx context.Context) error {
	messages, err := m.EventBus.Subscribe(ctx, TopicCleanupCycle)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		started := time.Now()
		if err := monitor.CleanupOldContent(m.DB, m.Config.RetentionDays); err != nil {
			Logger.Log.Errorf("cleanup cycle failed: %v", err)
			publishResult(m.EventBus, "cleanup", false, 0, started)
			continue
		}
		publishResult(m.EventBus, "cleanup", true, 0, started)
	}
	return nil
}

func (m *CleanupModule) Name() string {
	return m.Config.Name
}
