package http

import (
	"github.com/fikadu-bingo/bingo-server/internal/api/ws"
	"github.com/fikadu-bingo/bingo-server/internal/config"
	"github.com/fikadu-bingo/bingo-server/internal/room"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(reg *room.Registry, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// WebSocket for gameplay: join/leave/claim flow in and room events flow out
	r.GET("/ws", hub.HandleWS)

	r.GET("/health", HealthHandler)

	// --- READ-ONLY GAME ENDPOINTS ---
	r.GET("/api/rooms", ListRoomsHandler(reg))
	r.GET("/api/rooms/:stake", GetRoomHandler(reg))

	// --- CONFIG ENDPOINTS ---
	r.GET("/api/config", GetConfigHandler(cfg))

	return r
}
