package websocket

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/vibecode/server/internal/preview"
	"codeberg.org/vibecode/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, hub *preview.Hub, sessionManager *sessions.Manager) {
	router.GET("/ws/preview", PreviewHandler(hub, sessionManager))
}
