package main

import (
	"context"
	"fmt"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/httpserver"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/obs"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository/memory"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/employee"
)

const serviceName = "employee-api"

func NewServerApp(_ context.Context, c *Config) (*httpserver.Server, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}
	logger = logger.With("service", serviceName)

	employeeService := employee.NewService(
		employee.Config{AllowDuplicateEmail: c.AllowDuplicateEmail},
		memory.NewEmployeeRepo(),
	)
	if c.AllowDuplicateEmail {
		logger.Warn("duplicate employee emails are allowed")
	}

	metrics := obs.NewMetrics(serviceName)
	metrics.SetBuildInfo(buildVersion)

	mux := handlers.NewEmployeeRouter(employeeService, metrics, logger)

	return &httpserver.Server{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		Logger:     logger,
	}, nil
}
