package http

import (
	"net/http"
	"strconv"

	"github.com/fikadu-bingo/bingo-server/internal/room"

	"github.com/gin-gonic/gin"
)

// @Summary List rooms
// @Description Returns a snapshot of every stake-tier room
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms [get]
func ListRoomsHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": reg.Snapshots()})
	}
}

// @Summary Get one room
// @Description Returns the full snapshot for one stake tier, call history included
// @Tags Room
// @Produce json
// @Param stake path int true "Stake tier"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{stake} [get]
func GetRoomHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		stake, err := strconv.Atoi(c.Param("stake"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stake"})
			return
		}
		r, ok := reg.Get(stake)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown stake tier"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": r.Snapshot()})
	}
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
