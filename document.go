// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"fmt"

	"github.com/sassoftware/concept-xtract/logger"
)

// DocumentVersion is the schema tag written into every Document.
const DocumentVersion = "shapes"

// Color is a normalized RGBA color, each channel in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Stroke is one output polyline with its brush style.
// Polyline holds either no points or at least two.
type Stroke struct {
	Type      string   `json:"type"`
	Width     *float64 `json:"width"`
	Color     *Color   `json:"color"`
	Opacity   *float64 `json:"opacity"`
	BlendMode *string  `json:"blendMode"`
	Eraser    bool     `json:"eraser"`
	Polyline  []Point  `json:"polyline"`
	KeyPoints []Point  `json:"keyPoints"`
}

// ImageRecord places one embedded image.
type ImageRecord struct {
	Type            string      `json:"type"`
	ImageIdentifier *string     `json:"imageIdentifier"`
	Size            *[2]float64 `json:"size"`
	Crop            *string     `json:"crop"`
	Transform       *Matrix     `json:"transform"`
	DocTransform    *Matrix     `json:"docTransform"`
	Local           *string     `json:"local"`
	Path            *string     `json:"path"`
}

// Document is the decoded geometry of one container.
type Document struct {
	Version  string        `json:"version"`
	Images   []ImageRecord `json:"images"`
	Strokes  []Stroke      `json:"strokes"`
	HasThumb bool          `json:"hasThumb"`
}

// ImageCopy instructs the writer to copy archive entry Source to images/Dest.
type ImageCopy struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// Result is the outcome of converting one container.
type Result struct {
	// JobID identifies the conversion in logs.
	JobID    string
	Document *Document
	Copies   []ImageCopy

	archive *Archive
}

// Entry returns the bytes of an archive entry referenced by the result,
// such as a copy Source or the thumbnail.
func (r *Result) Entry(name string) ([]byte, bool) {
	if r.archive == nil {
		return nil, false
	}
	return r.archive.Read(name)
}

// loadGraph decodes the named plist entry. A missing or unreadable entry
// yields a nil Graph: that section of the output is simply empty.
func loadGraph(a *Archive, name string) *Graph {
	data, ok := a.Read(name)
	if !ok {
		logger.Debug(fmt.Sprintf("convert: %s absent", name), true)
		return nil
	}
	g, err := DecodeGraph(data)
	if err != nil {
		logger.Debug(fmt.Sprintf("convert: %s unreadable: %v", name, err), true)
		return nil
	}
	return g
}

// Convert decodes a loaded container into a Document and the image copy
// instructions that go with it. maxJump bounds stroke segmentation (see
// DominantSegment). Convert never fails on damaged content: sections,
// objects and fields that cannot be decoded are left out.
func Convert(a *Archive, maxJump float64) *Result {
	strokes := loadGraph(a, StrokesEntry)
	b := &recordBuilder{
		g:       strokes,
		archive: a,
		res:     BuildResourceMap(loadGraph(a, ResourcesEntry)),
		doc:     DocumentTransform(loadGraph(a, DrawingEntry)),
		maxJump: maxJump,
	}
	b.build()

	doc := &Document{
		Version:  DocumentVersion,
		Images:   b.images,
		Strokes:  b.strokes,
		HasThumb: a.Has(ThumbEntry),
	}
	if doc.Images == nil {
		doc.Images = []ImageRecord{}
	}
	if doc.Strokes == nil {
		doc.Strokes = []Stroke{}
	}
	return &Result{Document: doc, Copies: b.copies, archive: a}
}
