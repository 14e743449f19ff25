package main

import (
	"time"

	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/feedback"
	"github.com/codenewsio/codenews/utils"
	"github.com/codenewsio/codenews/utils/dotenv"
	. "github.com/codenewsio/codenews/utils/log"
)

const (
	feedbackQueueName       = "codenews_feedback_queue"
	messageProcessBatchSize = 10
)

var appConfigPath = "cmd/codenews/config.yaml"

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		Log.Fatal("fail to load env: ", err)
	}

	cfg, err := config.ParseAppConfig(appConfigPath)
	if err != nil {
		Log.Fatal("fail to parse app config: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	reader, err := utils.NewSQSMessageQueueReader(feedbackQueueName, 20)
	if err != nil {
		Log.Fatal("fail to initialize SQS message queue reader: ", err)
	}

	// Main feedback logic lives in the processor.
	processor := feedback.NewFeedbackMessageProcessor(reader, db, engine.NewEngine(db, cfg))

	for {
		processor.ReadAndProcessMessages(messageProcessBatchSize)

		// Protective delay
		time.Sleep(2 * time.Second)
	}
}
