package main

import (
	"github.com/codenewsio/codenews/bot"
	"github.com/codenewsio/codenews/engine"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AddFeedbackRoutes(rg *gin.RouterGroup, db *gorm.DB, e *engine.Engine) {
	slack := rg.Group("/slack")

	slack.POST("/interaction", bot.InteractionHandler(db, e))

	stats := rg.Group("/stats")

	stats.GET("/", bot.StatsHandler(e))
	stats.GET("/preferences", bot.PreferencesHandler(e))
}
