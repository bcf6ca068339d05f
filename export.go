// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sassoftware/concept-xtract/logger"
)

// Bundle lists the files written for one converted container.
type Bundle struct {
	Dir      string
	JSON     string
	Thumb    string
	ImageDir string
	Images   []string
}

// BundleDir returns the default output directory for src: a folder named
// after the file, next to it ("a/b/Demo.concept" -> "a/b/Demo").
func BundleDir(src string) (dir, base string) {
	base = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), base), base
}

// WriteDocument encodes doc as JSON to w, keeping non-ASCII text unescaped.
func WriteDocument(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// WriteBundle writes <dir>/<base>.json, <dir>/<base>_Thumb.jpg when the
// container has a thumbnail, and every copied image under <dir>/images.
func WriteBundle(res *Result, dir, base string) (*Bundle, error) {
	b := &Bundle{
		Dir:      dir,
		JSON:     filepath.Join(dir, base+".json"),
		ImageDir: filepath.Join(dir, "images"),
	}
	if err := os.MkdirAll(b.ImageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	if thumb, ok := res.Entry(ThumbEntry); ok {
		b.Thumb = filepath.Join(dir, base+"_Thumb.jpg")
		if err := os.WriteFile(b.Thumb, thumb, 0o644); err != nil {
			return nil, fmt.Errorf("write thumbnail: %w", err)
		}
	}

	for _, c := range res.Copies {
		data, ok := res.Entry(c.Source)
		if !ok {
			logger.Debug(fmt.Sprintf("export: copy source vanished: %s", c.Source))
			continue
		}
		dst := filepath.Join(b.ImageDir, filepath.Base(c.Dest))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return nil, fmt.Errorf("write image %s: %w", c.Dest, err)
		}
		b.Images = append(b.Images, dst)
	}

	f, err := os.Create(b.JSON)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", b.JSON, err)
	}
	if err := WriteDocument(f, res.Document); err != nil {
		f.Close()
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("export: wrote %s images=%d", b.JSON, len(b.Images)), true)
	return b, nil
}
