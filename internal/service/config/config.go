// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"strconv"

	xtract "github.com/sassoftware/concept-xtract"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	BodyLimitMB  int
	MaxJump      float64
	Concurrency  int
}

// Load reads the service configuration from the environment.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimitMB:  getEnvAsInt("BODY_LIMIT_MB", 64),
		MaxJump:      getEnvAsFloat("MAX_JUMP", xtract.DefaultMaxJump),
		Concurrency:  getEnvAsInt("MAX_CONCURRENT_DOCUMENTS", 4),
	}
}

// Extractor builds the conversion config for the service.
func (c *Config) Extractor() *xtract.Config {
	cfg := xtract.NewDefaultConfig()
	cfg.MaxJump = c.MaxJump
	cfg.MaxConcurrentDocuments = c.Concurrency
	cfg.DebugOn = c.Environment == "development"
	return cfg
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
