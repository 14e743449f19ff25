package pipeline

import (
	"context"
	"time"

	Logger "github.com/codenewsio/codenews/utils/log"
)

const gracefulRetryDelay = 3 * time.Second

// Module is one long-running unit of the pipeline. It takes in a context
// object by which its lifecycle is managed, and returns an error if execution
// failed in a way that warrants a restart.
type Module interface {
	RunModule(ctx context.Context) error

	// Uniquely identifies the module instance.
	Name() string
}

// RunModuleWithGracefulRestart keeps a module alive: a module returning an
// error is restarted after a short delay, a clean return ends it.
func RunModuleWithGracefulRestart(ctx context.Context, module Module) {
	for {
		err := module.RunModule(ctx)
		if err == nil {
			break
		}
		Logger.Log.Errorf("module %s exited with error %v, retry in %v",
			module.Name(), err, gracefulRetryDelay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(gracefulRetryDelay):
		}
	}
}
