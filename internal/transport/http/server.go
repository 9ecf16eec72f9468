package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/codepairhq/codepair-server/internal/config"
	"github.com/codepairhq/codepair-server/internal/core"
	"github.com/codepairhq/codepair-server/internal/metrics"
)

// NewServer builds the HTTP server: websocket endpoint, health, metrics and
// the read-only room membership API.
func NewServer(hub *core.Hub, m *metrics.Set, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rooms := NewRoomHandlers(hub, logger)
	router.GET("/api/rooms/:room/participants", rooms.Participants)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, m, cfg, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
