package utils

import (
	Flag "github.com/codenewsio/codenews/utils/flag"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// InitTracer starts the Datadog tracer. Call once in main after flags are
// parsed.
func InitTracer() {
	env := "development"
	if IsProdEnv() {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(Flag.ServiceName),
		tracer.WithEnv(env),
	)
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
