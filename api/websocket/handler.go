package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/vibecode/server/internal/errors"
	"codeberg.org/vibecode/server/internal/logger"
	"codeberg.org/vibecode/server/internal/preview"
	"codeberg.org/vibecode/server/internal/sessions"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     preview.CheckOrigin,
}

// handles WebSocket connections for live preview selection.
// clients connect with the session_id of an existing agent session and
// receive selection_changed broadcasts for that session.
func PreviewHandler(hub *preview.Hub, sessionManager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ConnectParams
		if err := c.ShouldBindQuery(&params); err != nil {
			errors.BadRequest(c, "invalid parameters", err)
			return
		}

		// the preview channel is scoped to a live agent session
		if _, exists := sessionManager.GetSession(params.SessionID); !exists {
			errors.SessionNotFound(c)
			return
		}

		// check connection limits before accepting new connection
		ipAddress := c.ClientIP()

		canAccept, reason := hub.CanAcceptConnection(ipAddress)
		if !canAccept {
			errors.TooManyRequests(c, reason)
			return
		}

		clientID, err := preview.GenerateClientID()
		if err != nil {
			errors.InternalError(c, "failed to generate client ID", err)
			return
		}

		// upgrade HTTP connection to WebSocket
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade connection",
				"session_id", params.SessionID,
				"ip", ipAddress,
			)

			return
		}

		// track IP connection only after successful upgrade
		hub.TrackIPConnection(ipAddress)

		client := preview.NewClient(clientID, params.SessionID, ipAddress, conn, hub)

		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()

		logger.Info("preview connection established",
			"client_id", clientID,
			"session_id", params.SessionID,
			"ip", ipAddress,
		)
	}
}
