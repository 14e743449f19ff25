package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/codenewsio/codenews/bot"
	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/digest"
	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/monitor"
	"github.com/codenewsio/codenews/pipeline"
	"github.com/codenewsio/codenews/utils"
	"github.com/codenewsio/codenews/utils/dotenv"
	. "github.com/codenewsio/codenews/utils/flag"
	. "github.com/codenewsio/codenews/utils/log"
)

var AppConfigPath *string

// init() will always be called before the execution of main function.
func init() {
	AppConfigPath = flag.String("app_config_path", "cmd/codenews/config.yaml", "path to app config")
}

func NewDogStatsdClient() *statsd.Client {
	client, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		panic(err)
	}
	return client
}

func main() {
	ParseFlags()
	InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	utils.InitTracer()
	defer utils.CloseTracer()

	cfg, err := config.ParseAppConfig(*AppConfigPath)
	if err != nil {
		Log.Fatal("fail to parse app config: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	budget, err := utils.GetNotificationBudget(cfg.MaxNotificationsPerHour)
	if err != nil {
		Log.Fatal("fail to connect to redis: ", err)
	}

	eventbus := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)
	ctx, cancel := context.WithCancel(context.Background())

	contentMonitor := monitor.NewMonitor(db, cfg)
	enricher := monitor.NewEnricher(db)
	contentFilter := filter.NewContentFilter(db, cfg)
	personalization := engine.NewEngine(db, cfg)
	notifier := bot.NewSlackNotifier()
	dispatcher := bot.NewDispatcher(contentMonitor, contentFilter, notifier, budget, cfg)
	generator := digest.NewGenerator(db, cfg, digest.NewTelegraphPublisher(cfg.DigestAuthor), notifier)

	jobs := []*pipeline.CycleJob{
		pipeline.NewCycleJob(pipeline.TopicIngestCycle, cfg.IngestEveryMs),
		pipeline.NewCycleJob(pipeline.TopicCleanupCycle, cfg.CleanupEveryMs),
		pipeline.NewCycleJob(pipeline.TopicDigestCycle, cfg.DigestEveryMs),
	}

	// Initialize all engine modules here.
	modules := []pipeline.Module{
		// Reporter aggregates cycle results into datadog metrics.
		pipeline.NewReporter(pipeline.ReporterConfig{Name: "reporter"}, NewDogStatsdClient(), eventbus),
		// Scheduler fires cycle ticks onto the event bus.
		pipeline.NewScheduler(pipeline.SchedulerConfig{Name: "scheduler"}, jobs, eventbus),
		// Stage modules, each driven purely by its topic.
		pipeline.NewIngestModule(pipeline.IngestConfig{Name: "ingest"},
			contentMonitor, enricher, contentFilter, personalization, dispatcher, eventbus),
		pipeline.NewCleanupModule(pipeline.CleanupConfig{Name: "cleanup", RetentionDays: cfg.RetentionDays}, db, eventbus),
		pipeline.NewDigestModule(pipeline.DigestConfig{Name: "digest"}, generator, eventbus),
	}

	pipelineEngine := pipeline.NewEngine(modules, ctx, cancel, eventbus)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		pipelineEngine.Shutdown()
	}()

	Log.Info("===== CodeNews Pipeline Started =====")
	// blocking call.
	pipelineEngine.Run()

	Log.Info("pipeline stopped execution")
}
