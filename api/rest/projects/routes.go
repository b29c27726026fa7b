package projects

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/vibecode/server/internal/auth"
	"codeberg.org/vibecode/server/vibecode/projects"
)

func RegisterRoutes(router *gin.RouterGroup, projectRepo *projects.Repository) {
	// authenticated project operations
	projectsGroup := router.Group("/projects")
	projectsGroup.Use(auth.AuthMiddleware())
	{
		projectsGroup.GET("", ListProjectsHandler(projectRepo))
		projectsGroup.POST("", CreateProjectHandler(projectRepo))
		projectsGroup.GET("/:id", GetProjectHandler(projectRepo))
		projectsGroup.PUT("/:id", UpdateProjectHandler(projectRepo))
		projectsGroup.DELETE("/:id", DeleteProjectHandler(projectRepo))
	}

	// public projects (no auth required)
	router.GET("/public/projects", ListPublicProjectsHandler(projectRepo))
	router.GET("/public/projects/:id", GetPublicProjectHandler(projectRepo))
}
