package bot

import (
	"net/http"
	"strconv"

	"github.com/codenewsio/codenews/engine"
	"github.com/gin-gonic/gin"
)

// StatsHandler exposes aggregate preference and feedback counters.
func StatsHandler(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := e.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// PreferencesHandler exposes the strongest learned keyword biases.
func PreferencesHandler(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		positive, negative, err := e.TopPreferences(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"positive": positive,
			"negative": negative,
		})
	}
}
