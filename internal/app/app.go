// Package app wires configuration, storage, service and HTTP layers
// together for the API server.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/marginlab/ccpmargin/config"
	"github.com/marginlab/ccpmargin/internal/api"
	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/service"
	"github.com/marginlab/ccpmargin/internal/storage"
)

// InitializeApp builds the fully wired Gin router for API mode.
//
// It connects to PostgreSQL, constructs the snapshot repository, the
// simulation service and the HTTP handlers, and registers the health
// probes. The returned cleanup closes the DB connection on shutdown.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewSnapshotRepository(db)
	svc := service.NewSimulationService(repo)

	defaults := models.Scenario{
		StressMult:    cfg.Scenario.StressMult,
		ConcThreshold: cfg.Scenario.ConcThreshold,
		ConcAddonPct:  cfg.Scenario.ConcAddonPct,
	}

	handler := api.NewHandler(svc, repo, defaults)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
