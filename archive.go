// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/sassoftware/concept-xtract/logger"
)

// Well-known entry names inside a .concept container.
const (
	StrokesEntry   = "Strokes.plist"
	ResourcesEntry = "Resources.plist"
	DrawingEntry   = "Drawing.plist"
	ThumbEntry     = "Thumb.jpg"
	ImagesFolder   = "ImportedImages"
)

var (
	// ErrMissingInput is returned when the source document does not exist.
	ErrMissingInput = errors.New("input document not found")
	// ErrNotArchive is returned when the source is not a readable zip container.
	ErrNotArchive = errors.New("not a concept container")
)

// An Archive is the fully loaded content of one container.
// It is immutable once returned by OpenArchive or NewArchive.
type Archive struct {
	names []string
	blobs map[string][]byte
}

// OpenArchive reads the container stored at path.
func OpenArchive(path string) (*Archive, error) {
	logger.Debug(fmt.Sprintf("Open archive: path=%s", path), true)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotArchive, path)
	}
	return NewArchive(f, fi.Size())
}

// NewArchive reads every file entry of the zip data in r, in central directory order.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		logger.Error(fmt.Sprintf("archive: zip open failed: %v", err))
		return nil, fmt.Errorf("%w: %v", ErrNotArchive, err)
	}

	a := &Archive{blobs: make(map[string][]byte, len(zr.File))}
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if _, dup := a.blobs[zf.Name]; dup {
			logger.Debug(fmt.Sprintf("archive: duplicate entry ignored: name=%s", zf.Name))
			continue
		}
		data, err := readEntry(zf)
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", zf.Name, err)
		}
		a.names = append(a.names, zf.Name)
		a.blobs[zf.Name] = data
	}
	logger.Debug(fmt.Sprintf("archive: loaded entries=%d", len(a.names)), true)
	return a, nil
}

func readEntry(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Names returns the entry names in archive order.
func (a *Archive) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Has reports whether the archive holds an entry called name.
func (a *Archive) Has(name string) bool {
	_, ok := a.blobs[name]
	return ok
}

// Read returns the bytes of the named entry.
func (a *Archive) Read(name string) ([]byte, bool) {
	b, ok := a.blobs[name]
	return b, ok
}

// findImage locates the archive entry holding the image id.
// The exact "<folder>/<id>.<ext>" path wins; otherwise the first entry
// under the images folder whose name contains id is used.
func (a *Archive) findImage(id, ext string) (string, bool) {
	if id == "" {
		return "", false
	}
	if ext != "" {
		cand := ImagesFolder + "/" + id + "." + ext
		if a.Has(cand) {
			return cand, true
		}
	}
	for _, n := range a.names {
		if strings.HasPrefix(n, ImagesFolder+"/") && strings.Contains(n, id) {
			return n, true
		}
	}
	return "", false
}
