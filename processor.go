// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sassoftware/concept-xtract/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Processor defines the contract for converting .concept containers.
type Processor interface {
	Convert(ctx context.Context, path string) (*Result, error)
	ConvertReader(ctx context.Context, r io.ReaderAt, size int64) (*Result, error)
	ConvertBatch(ctx context.Context, paths []string) ([]BatchResult, error)
}

// BatchResult is the outcome for one input of a batch.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// processor bounds how many documents are decoded at once. Each document
// is decoded on its own with no state shared between documents.
type processor struct {
	cfg *Config
	sem *semaphore.Weighted
}

// NewProcessor validates the config and creates a new processor.
func NewProcessor(cfg *Config) (*processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	//Set the logger function
	switch {
	case cfg.Logger != nil:
		logger.SetLogger(cfg.Logger)
	case cfg.DebugOn:
		logger.SetLogger(stderrLogger)
	}

	logger.Debug(fmt.Sprintf("Processor initialized: %v", cfg), true)

	return &processor{
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.MaxConcurrentDocuments)),
	}, nil
}

// Convert loads and converts the container at path.
func (p *processor) Convert(ctx context.Context, path string) (*Result, error) {
	logger.Debug(fmt.Sprintf("Starting conversion: path=%s", path), true)

	if err := p.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	a, err := OpenArchive(path)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to open container: path=%s err=%v", path, err))
		return nil, err
	}
	return p.convert(a, path), nil
}

// ConvertReader converts a container held in memory or any other ReaderAt.
func (p *processor) ConvertReader(ctx context.Context, r io.ReaderAt, size int64) (*Result, error) {
	if err := p.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	a, err := NewArchive(r, size)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to read container: err=%v", err))
		return nil, err
	}
	return p.convert(a, "<reader>"), nil
}

func (p *processor) convert(a *Archive, source string) *Result {
	jobID := uuid.NewString()
	logger.Debug(fmt.Sprintf("Decoding container: job=%s source=%s entries=%d", jobID, source, len(a.Names())), true)

	res := Convert(a, p.cfg.MaxJump)
	res.JobID = jobID

	logger.Info(fmt.Sprintf("Conversion completed: job=%s source=%s images=%d strokes=%d",
		jobID, source, len(res.Document.Images), len(res.Document.Strokes)), true)
	return res
}

// ConvertBatch converts every path, at most MaxConcurrentDocuments at a time.
// Results come back in input order. In BestEffort mode a failed input only
// sets its own Err; in Strict mode the first failure cancels the inputs not
// yet started and is returned.
func (p *processor) ConvertBatch(ctx context.Context, paths []string) ([]BatchResult, error) {
	results := make([]BatchResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		results[i].Path = path
		g.Go(func() error {
			res, err := p.Convert(gctx, path)
			results[i].Result, results[i].Err = res, err
			if err == nil {
				return nil
			}
			if p.cfg.ParsingMode == Strict {
				logger.Debug(fmt.Sprintf("Strict mode error, stopping batch: path=%s err=%v", path, err), true)
				return fmt.Errorf("convert %s: %w", path, err)
			}
			logger.Debug(fmt.Sprintf("BestEffort: input failed, continuing: path=%s err=%v", path, err), true)
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (p *processor) acquireSlot(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	logger.Debug("Slot acquired successfully", true)
	return nil
}
