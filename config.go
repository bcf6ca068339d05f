// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/sassoftware/concept-xtract/logger"
)

// ParsingMode decides how a batch reacts to a document that cannot be converted.
type ParsingMode string

const (
	// Strict stops the whole batch at the first failed document.
	Strict ParsingMode = "strict"
	// BestEffort reports each failure with its input and converts the rest.
	BestEffort ParsingMode = "best-effort"
)

type Config struct {
	MaxJump                float64     `validate:"gt=0"`
	MaxConcurrentDocuments int         `validate:"min=1,max=16"`
	ParsingMode            ParsingMode `validate:"oneof=strict best-effort"`
	DebugOn                bool
	Logger                 logger.LogFunc
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxJump:                DefaultMaxJump,
		MaxConcurrentDocuments: 4,
		ParsingMode:            BestEffort,
		DebugOn:                false,
	}
}

func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	return validate.Struct(cfg)
}

// stderrLogger is installed when DebugOn is set without a custom Logger.
func stderrLogger(level logger.LogLevel, msg string, keyvals ...interface{}) {
	if len(keyvals) > 0 {
		log.Printf("[%s] %s %v", level, msg, keyvals)
		return
	}
	log.Printf("[%s] %s", level, msg)
}

func (cfg *Config) String() string {
	return fmt.Sprintf("max_jump=%g max_concurrent_documents=%d parsing_mode=%s",
		cfg.MaxJump, cfg.MaxConcurrentDocuments, cfg.ParsingMode)
}
