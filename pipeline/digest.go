package pipeline

import (
	"context"
	"time"

	"github.com/codenewsio/codenews/digest"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type DigestConfig struct {
	Name string
}

// DigestModule publishes a digest on every digest tick, when enough content
// qualifies.
type DigestModule struct {
	Config DigestConfig

	Generator *digest.Generator
	EventBus  *gochannel.GoChannel
}

func NewDigestModule(config DigestConfig, g *digest.Generator, bus *gochannel.GoChannel) *DigestModule {
	return &DigestModule{
		Config:    config,
		Generator: g,
		EventBus:  bus,
	}
}

func (m *DigestModule) RunModule(ctx context.Context) error {
	messages, err := m.EventBus.Subscribe(ctx, TopicDigestCycle)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		started := time.Now()
		url, err := m.Generator.PublishDigest()
		if err != nil {
			Logger.Log.Errorf("digest cycle failed: %v", err)
			publishResult(m.EventBus, "digest", false, 0, started)
			continue
		}

		published := 0
		if url != "" {
			published = 1
		}
		publishResult(m.EventBus, "digest", true, published, started)
	}
	return nil
}

func (m *DigestModule) Name() string {
	return m.Config.Name
}
