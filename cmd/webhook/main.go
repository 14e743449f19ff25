package main

import (
	"net/http"

	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/utils"
	"github.com/codenewsio/codenews/utils/dotenv"
	. "github.com/codenewsio/codenews/utils/flag"
	. "github.com/codenewsio/codenews/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

var appConfigPath = "cmd/codenews/config.yaml"

func main() {
	ParseFlags()
	InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	cfg, err := config.ParseAppConfig(appConfigPath)
	if err != nil {
		Log.Fatal("fail to parse app config: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	personalization := engine.NewEngine(db, cfg)

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))

	// Debug route for testing and health check
	router.GET("/webhook/ping", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, "pong")
	})

	AddFeedbackRoutes(router.Group("/webhook"), db, personalization)
	// Additional webhooks should be added below this line

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "CodeNews server - API not found"})
	})

	Log.Info("===== Webhook Server Started =====")
	router.Run(":7070")
}
