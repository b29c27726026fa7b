package websocket

type ConnectParams struct {
	SessionID string `form:"session_id" binding:"required"`
}
