/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	PipelineService = "pipeline"
	WebhookService  = "webhook"
	FeedbackWorker  = "feedback_worker"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", PipelineService, "'pipeline', 'webhook' or 'feedback_worker'")
}

// ParseFlags must be called once in main after all flags are registered.
func ParseFlags() {
	flag.Parse()
}
