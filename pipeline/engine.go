package pipeline

import (
	"context"
	"sync"

	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Engine manages shared resources and execution lifecycle of each module. It
// maintains a shared event bus; for now a golang channel implementation, which
// could later be substituted with a broker-backed bus.
type Engine struct {
	// Each module runs in its own goroutine, bound to the engine's lifetime.
	Modules []Module

	ctx    context.Context
	cancel context.CancelFunc

	EventBus *gochannel.GoChannel
}

func NewEngine(ms []Module, ctx context.Context, cancel context.CancelFunc, e *gochannel.GoChannel) *Engine {
	return &Engine{
		Modules:  ms,
		ctx:      ctx,
		cancel:   cancel,
		EventBus: e,
	}
}

// Run executes all modules and blocks until every module finished execution.
func (e *Engine) Run() {
	var wg sync.WaitGroup

	for idx := range e.Modules {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			Logger.Log.Infof("start engine module %s", e.Modules[index].Name())
			RunModuleWithGracefulRestart(e.ctx, e.Modules[index])
			Logger.Log.Infof("module %s finished execution", e.Modules[index].Name())
		}(idx)
	}

	wg.Wait()
}

// Shutdown cancels the root context and closes the event bus, unblocking every
// subscribed module.
func (e *Engine) Shutdown() {
	Logger.Log.Infoln("starting graceful shutdown process. Goodbye!")
	e.cancel()
	e.EventBus.Close()
}
