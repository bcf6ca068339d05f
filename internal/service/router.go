// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package service exposes container conversion over HTTP.
package service

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	xtract "github.com/sassoftware/concept-xtract"
	"github.com/sassoftware/concept-xtract/internal/service/config"
	"github.com/sassoftware/concept-xtract/internal/service/handlers"
	"github.com/sassoftware/concept-xtract/internal/service/middleware"
)

// New builds the conversion app.
func New(cfg *config.Config, proc xtract.Processor) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Concept Converter",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(os.Stdout))

	// ============================================================
	// Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)

	conv := handlers.NewConverter(proc)
	app.Post("/convert", conv.Convert)

	return app
}
