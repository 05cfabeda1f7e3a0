package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/retailhub-backend/internal/middleware"
	"github.com/retailhub/retailhub-backend/internal/websocket"
)

// FeedController upgrades clients onto the retailer change feed.
type FeedController struct {
	hub            *websocket.Hub
	allowedOrigins map[string]bool
}

// NewFeedController accepts browser connections only from allowedOrigins.
// Requests without an Origin header (non-browser clients) are always accepted.
func NewFeedController(hub *websocket.Hub, allowedOrigins []string) *FeedController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &FeedController{hub: hub, allowedOrigins: origins}
}

// Subscribe handles GET /ws.
func (ctrl *FeedController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := websocket.Serve(ctrl.hub, c.Writer, c.Request, ctrl.checkOrigin); err != nil {
		// Upgrade has already written the HTTP error
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
}

func (ctrl *FeedController) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || ctrl.allowedOrigins["*"] {
		return true
	}
	return ctrl.allowedOrigins[origin]
}
