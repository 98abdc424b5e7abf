package app

import (
	"github.com/vikasdeshmukh63/ecom-backend/config"
	"github.com/vikasdeshmukh63/ecom-backend/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
