package agent

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	agentcore "codeberg.org/vibecode/server/internal/agent"
	"codeberg.org/vibecode/server/internal/auth"
	"codeberg.org/vibecode/server/internal/logger"
	"codeberg.org/vibecode/server/internal/sessions"
)

// registers agent routes. Processing new messages is rate limited per
// client IP; flow navigation endpoints are cheap and stay unlimited.
func RegisterRoutes(router *gin.RouterGroup, agentClient *agentcore.Agent, sessionMgr *sessions.Manager) {
	agentGroup := router.Group("/agent")
	agentGroup.Use(auth.OptionalAuthMiddleware())
	{
		agentGroup.POST("/process", processRateLimiter(), ProcessHandler(agentClient, sessionMgr))
		agentGroup.POST("/answer", AnswerHandler(sessionMgr))
		agentGroup.POST("/complete", CompleteHandler(agentClient, sessionMgr))
		agentGroup.POST("/skip", SkipHandler(agentClient, sessionMgr))
	}
}

func processRateLimiter() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted("30-M")
	if err != nil {
		logger.FatalErr(err, "invalid rate limit format")
	}

	store := memory.NewStore()

	return mgin.NewMiddleware(limiter.New(store, rate))
}
