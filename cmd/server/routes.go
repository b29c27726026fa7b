package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"codeberg.org/vibecode/server/api/rest/agent"
	"codeberg.org/vibecode/server/api/rest/auth"
	"codeberg.org/vibecode/server/api/rest/health"
	"codeberg.org/vibecode/server/api/rest/projects"
	"codeberg.org/vibecode/server/api/websocket"
	"codeberg.org/vibecode/server/docs"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)
	router.GET("/swagger/doc.json", swaggerDocHandler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo)
		projects.RegisterRoutes(v1, server.projectRepo)
		agent.RegisterRoutes(v1, server.agent, server.sessionManager)
		websocket.RegisterRoutes(v1, server.hub, server.sessionManager)
	}
}

// serves the generated OpenAPI document
func swaggerDocHandler(c *gin.Context) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "swagger document unavailable"})
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(doc))
}
