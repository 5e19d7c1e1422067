package http

import (
	"net/http"

	"github.com/fikadu-bingo/bingo-server/internal/config"

	"github.com/gin-gonic/gin"
)

// @Summary Get game configuration
// @Description Returns the stake tiers and round timing the lobby needs to render
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config [get]
func GetConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"stakeTiers":       cfg.StakeTiers,
			"countdownSeconds": cfg.CountdownSeconds,
			"callIntervalSec":  int(cfg.CallInterval.Seconds()),
			"houseCutPercent":  cfg.HouseCutPercent,
		})
	}
}
