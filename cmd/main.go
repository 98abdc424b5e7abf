// Package main is the entry point for the ecommerce backend.
//
// @title           Ecommerce Backend API
// @version         1.0.0
// @description     Users, products, orders, coupons and admin dashboard over MongoDB,
// @description     with a read-through cache that is invalidated selectively on writes.
//
// @contact.name   API Support
// @contact.url    https://github.com/vikasdeshmukh63/ecom-backend
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Users
// @tag.description Registration and user administration
//
// @tag.name        Products
// @tag.description Catalog, search and product administration
//
// @tag.name        Orders
// @tag.description Checkout and order processing
//
// @tag.name        Payments
// @tag.description Payment intents and discount coupons
//
// @tag.name        Dashboard
// @tag.description Admin statistics and charts
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vikasdeshmukh63/ecom-backend/config"
	_ "github.com/vikasdeshmukh63/ecom-backend/docs" // swagger docs
	"github.com/vikasdeshmukh63/ecom-backend/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(func(ctx context.Context) error {
		return application.Close(ctx)
	})

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
