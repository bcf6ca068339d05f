// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	xtract "github.com/sassoftware/concept-xtract"
)

// ============================================================
// Convert Handler
// ============================================================

// Converter serves container conversions through a shared Processor.
type Converter struct {
	proc xtract.Processor
}

func NewConverter(proc xtract.Processor) *Converter {
	return &Converter{proc: proc}
}

// Convert decodes the uploaded .concept container (multipart field "file")
// and answers with its geometry document.
func (h *Converter) Convert(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[CONVERTER] FormFile error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}
	log.Printf("[CONVERTER] File received: %s, size: %d", file.Filename, file.Size)

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	res, err := h.proc.ConvertReader(c.Context(), f, file.Size)
	if err != nil {
		log.Printf("[CONVERTER] Conversion error: %v", err)
		status := fiber.StatusInternalServerError
		if errors.Is(err, xtract.ErrNotArchive) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("[CONVERTER] Conversion successful: job=%s strokes=%d images=%d",
		res.JobID, len(res.Document.Strokes), len(res.Document.Images))
	c.Set("X-Job-ID", res.JobID)
	return c.JSON(res.Document)
}
