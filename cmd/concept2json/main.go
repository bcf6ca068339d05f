// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Command concept2json converts .concept drawings into JSON geometry bundles.
//
//	concept2json [-max-jump=2000] [-out DIR] file.concept [more.concept ...]
//
// Each input produces <name>/<name>.json, <name>/<name>_Thumb.jpg (if the
// drawing has a thumbnail) and <name>/images/.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	xtract "github.com/sassoftware/concept-xtract"
	"github.com/sassoftware/concept-xtract/tracer"
)

var (
	maxJump = flag.Float64("max-jump", xtract.DefaultMaxJump, "Largest point-to-point jump kept inside one stroke")
	outDir  = flag.String("out", "", "Output root (default: next to each input)")
	workers = flag.Int("conc", 4, "Number of files to convert concurrently")
	strict  = flag.Bool("strict", false, "Stop at the first input that fails")
	debug   = flag.Bool("debug", false, "Log decoding details to stderr")
	trace   = flag.Bool("trace", false, "Print the trace log after the run")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] file.concept [more.concept ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	cfg := xtract.NewDefaultConfig()
	cfg.MaxJump = *maxJump
	cfg.MaxConcurrentDocuments = *workers
	cfg.DebugOn = *debug
	if *strict {
		cfg.ParsingMode = xtract.Strict
	}

	proc, err := xtract.NewProcessor(cfg)
	if err != nil {
		log.Fatalf("concept2json: %v", err)
	}

	results, batchErr := proc.ConvertBatch(context.Background(), flag.Args())

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Printf("[FAIL] %s: %v", r.Path, r.Err)
			continue
		}
		dir, base := xtract.BundleDir(r.Path)
		if *outDir != "" {
			dir = filepath.Join(*outDir, base)
		}
		b, err := xtract.WriteBundle(r.Result, dir, base)
		if err != nil {
			failed++
			log.Printf("[FAIL] %s: %v", r.Path, err)
			continue
		}
		fmt.Printf("[OK] %s\n", r.Path)
		fmt.Printf(" -> %s\n", b.JSON)
		if b.Thumb != "" {
			fmt.Printf(" -> %s\n", b.Thumb)
		}
		if len(b.Images) > 0 {
			fmt.Printf(" -> %s\n", filepath.Join(b.ImageDir, "*"))
		}
	}

	if *trace {
		tracer.Flush(os.Stderr)
	}
	if batchErr != nil || failed > 0 {
		os.Exit(1)
	}
}
