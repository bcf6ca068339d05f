// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Command conceptd serves .concept conversions over HTTP.
package main

import (
	"fmt"
	"log"

	xtract "github.com/sassoftware/concept-xtract"
	"github.com/sassoftware/concept-xtract/internal/service"
	"github.com/sassoftware/concept-xtract/internal/service/config"
)

func main() {
	cfg := config.Load()

	proc, err := xtract.NewProcessor(cfg.Extractor())
	if err != nil {
		log.Fatalf("Invalid converter configuration: %v", err)
	}

	app := service.New(cfg, proc)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Concept Converter on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
