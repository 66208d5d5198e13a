package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/audit"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/httpserver"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/obs"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository/memory"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/auth"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/auth/tokenmanager"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/rbac"
)

const serviceName = "auth-api"

func NewServerApp(_ context.Context, c *Config) (*httpserver.Server, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}
	logger = logger.With("service", serviceName)

	// Initialize in-memory stores, seeded with demo data
	refreshRepo := memory.NewRefreshTokenRepo()
	userRepo := memory.NewUserRepo()
	codeRepo := memory.NewAuthCodeRepo()
	roleRepo := memory.NewRoleRepo()

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey: c.SigningKey,
		Issuer:    c.Issuer,
		Audience:  c.Audience,
		AccessTTL: time.Duration(c.AccessTokenTTL) * time.Second,
	}, refreshRepo)
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	recorder := audit.NewRecorder(logger.WithGroup("audit"), 0)

	authService, err := auth.NewService(auth.Config{}, tokenManager, recorder, userRepo, codeRepo)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	roleService := rbac.NewService(roleRepo)

	metrics := obs.NewMetrics(serviceName)
	metrics.SetBuildInfo(buildVersion)

	mux := handlers.NewAuthRouter(authService, roleService, recorder, metrics, logger)

	return &httpserver.Server{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		Logger:     logger,
	}, nil
}
