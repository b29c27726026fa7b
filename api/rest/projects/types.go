package projects

import (
	"codeberg.org/vibecode/server/api/rest/pagination"
	"codeberg.org/vibecode/server/vibecode/projects"
)

// ListResponse is a paginated project listing
type ListResponse struct {
	Projects   []projects.Project `json:"projects"`
	Pagination pagination.Meta    `json:"pagination"`
}

// MessageResponse is a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
