package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	apiws "codeberg.org/vibecode/server/api/websocket"
	"codeberg.org/vibecode/server/internal/agent"
	"codeberg.org/vibecode/server/internal/config"
	"codeberg.org/vibecode/server/internal/preview"
	"codeberg.org/vibecode/server/internal/sessions"
	"codeberg.org/vibecode/server/vibecode/projects"
	"codeberg.org/vibecode/server/vibecode/users"
)

// holds all dependencies and state for the API server
type Server struct {
	db             *pgxpool.Pool
	config         *config.Config
	userRepo       *users.Repository
	projectRepo    *projects.Repository
	sessionManager *sessions.Manager
	agent          *agent.Agent
	hub            *preview.Hub
	bridge         *apiws.Bridge
	router         *gin.Engine
}
