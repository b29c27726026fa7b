package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apiws "codeberg.org/vibecode/server/api/websocket"
	"codeberg.org/vibecode/server/internal/agent"
	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/config"
	"codeberg.org/vibecode/server/internal/preview"
	"codeberg.org/vibecode/server/internal/provider"
	"codeberg.org/vibecode/server/internal/sessions"
	"codeberg.org/vibecode/server/vibecode/projects"
	"codeberg.org/vibecode/server/vibecode/users"
)

const (
	// agent sessions inactive for longer than this are evicted
	sessionTTL = 30 * time.Minute
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small for pooler-backed hosting tiers
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// use simple protocol for PgBouncer compatibility: transaction mode
	// poolers do not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	projectRepo := projects.NewRepository(db)

	sessionManager := sessions.NewManager(sessionTTL)

	mockProvider := provider.New(provider.DefaultConfig())
	buildAgent := agent.New(analyzer.New(), mockProvider, agent.DefaultConfig())

	hub := preview.NewHub()

	// the bridge registers the element_click and clear_selection handlers
	// and broadcasts selection changes back to the session
	bridge := apiws.NewBridge(hub)

	router := gin.Default()

	server := &Server{
		db:             db,
		config:         cfg,
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		sessionManager: sessionManager,
		agent:          buildAgent,
		hub:            hub,
		bridge:         bridge,
		router:         router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
