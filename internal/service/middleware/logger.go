// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package middleware

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// requestFormat adds the upload size and the conversion job id so a request
// line can be matched with the converter's own log.
const requestFormat = "[${time}] ${status} - ${latency} ${method} ${path} | in=${bytesReceived}B job=${respHeader:X-Job-ID}\n"

// Logger returns the request logging middleware writing to stream
// (stdout when nil). Health probes are not logged.
func Logger(stream io.Writer) fiber.Handler {
	cfg := logger.Config{
		Format:     requestFormat,
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Skip: func(c fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/health/")
		},
	}
	if stream != nil {
		cfg.Stream = stream
	}
	return logger.New(cfg)
}
