// Package app wires configuration, storage, services and the HTTP router together.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vikasdeshmukh63/ecom-backend/config"
	"github.com/vikasdeshmukh63/ecom-backend/internal/http"
	"github.com/vikasdeshmukh63/ecom-backend/internal/storage"
)

// App is the initialized application.
type App struct {
	Router *gin.Engine

	db     *DatabaseComponents
	router *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	photos, err := storage.NewPhotoStore(cfg.Server.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("app: photo storage: %w", err)
	}

	db, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	services := InitializeServices(cfg, db, photos)
	rc := InitializeRouter(cfg, db, services, photos)

	return &App{
		Router: http.NewRouter(rc.HealthHandler, rc.Config),
		db:     db,
		router: rc,
	}, nil
}

// Close stops background workers, flushing queued log entries, then disconnects from MongoDB.
func (a *App) Close(ctx context.Context) error {
	if a.router != nil {
		a.router.Stop()
	}
	if a.db == nil || a.db.DB == nil {
		return nil
	}
	if err := a.db.DB.Close(ctx); err != nil {
		return fmt.Errorf("app: close mongodb: %w", err)
	}
	log.Info().Msg("MongoDB connection closed")
	return nil
}
