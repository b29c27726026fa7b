package projects

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/vibecode/server/api/rest/pagination"
	"codeberg.org/vibecode/server/internal/auth"
	"codeberg.org/vibecode/server/internal/errors"
	"codeberg.org/vibecode/server/vibecode/projects"
)

// CreateProjectHandler godoc
// @Summary Save a project
// @Description Save a generated component for the authenticated user
// @Tags projects
// @Accept json
// @Produce json
// @Param request body projects.CreateProjectRequest true "Project"
// @Success 201 {object} projects.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/projects [post]
// @Security BearerAuth
func CreateProjectHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req projects.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		project, err := projectRepo.Create(c.Request.Context(), userID, req)
		if err != nil {
			errors.InternalError(c, "failed to create project", err)
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

// ListProjectsHandler godoc
// @Summary List projects
// @Description List the authenticated user's projects, newest first
// @Tags projects
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/projects [get]
// @Security BearerAuth
func ListProjectsHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, 20, 100)

		list, total, err := projectRepo.List(c.Request.Context(), userID, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list projects", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Projects:   list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetProjectHandler godoc
// @Summary Get a project
// @Description Get one of the authenticated user's projects by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} projects.Project
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/projects/{id} [get]
// @Security BearerAuth
func GetProjectHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		projectID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		project, err := projectRepo.Get(c.Request.Context(), projectID, userID)
		if err != nil {
			errors.NotFound(c, "project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

// UpdateProjectHandler godoc
// @Summary Update a project
// @Description Update one of the authenticated user's projects
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body projects.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} projects.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/projects/{id} [put]
// @Security BearerAuth
func UpdateProjectHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		projectID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		var req projects.UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		project, err := projectRepo.Update(c.Request.Context(), projectID, userID, req)
		if err != nil {
			errors.NotFound(c, "project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

// DeleteProjectHandler godoc
// @Summary Delete a project
// @Description Delete one of the authenticated user's projects
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/projects/{id} [delete]
// @Security BearerAuth
func DeleteProjectHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		projectID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		err := projectRepo.Delete(c.Request.Context(), projectID, userID)
		if err != nil {
			if stderrors.Is(err, projects.ErrProjectNotFound) {
				errors.NotFound(c, "project")
				return
			}

			errors.InternalError(c, "failed to delete project", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "project deleted"})
	}
}

// ListPublicProjectsHandler godoc
// @Summary List public projects
// @Description List publicly shared projects, newest first
// @Tags projects
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListResponse
// @Router /api/v1/public/projects [get]
func ListPublicProjectsHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, 20, 100)

		list, total, err := projectRepo.ListPublic(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list public projects", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Projects:   list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetPublicProjectHandler godoc
// @Summary Get a public project
// @Description Get a publicly shared project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} projects.Project
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/public/projects/{id} [get]
func GetPublicProjectHandler(projectRepo *projects.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		project, err := projectRepo.GetPublic(c.Request.Context(), projectID)
		if err != nil {
			errors.NotFound(c, "project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}
