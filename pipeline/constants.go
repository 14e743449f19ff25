package pipeline

const (
	// Cycle tick topics, one per recurring pipeline stage.
	TopicIngestCycle  = "topic.ingest_cycle"
	TopicDigestCycle  = "topic.digest_cycle"
	TopicCleanupCycle = "topic.cleanup_cycle"

	// Completed cycle results for the reporter.
	TopicCycleResult = "topic.cycle_result"

	// Statsd metric names.
	MetricCycleCounter    = "codenews.cycle.count"
	MetricCycleItems      = "codenews.cycle.items"
	MetricCycleDurationMs = "codenews.cycle.duration_ms"
)
