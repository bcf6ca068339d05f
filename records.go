// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/sassoftware/concept-xtract/logger"
)

// ObjectKind classifies a strokes-graph object by its class name.
type ObjectKind int

const (
	ObjectUnknown ObjectKind = iota
	ObjectStroke
	ObjectImage
	ObjectShape
)

// ShapeKind selects the outline synthesized for a shape object.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
)

// Class names with a dedicated record path.
const (
	strokeClass = "Stroke"
	imageClass  = "ImageItem"
)

// eraseBlendMode is the blend mode that marks a stroke as an eraser.
const eraseBlendMode = "destinationOut"

// Class is the dispatch decision for one object, computed once from its class name.
type Class struct {
	Kind  ObjectKind
	Shape ShapeKind
}

// ClassifyObject maps a class name to its record kind. Any class other than
// strokes and images is a shape candidate; names containing "ellipse", "oval"
// or "circle" (any case) produce ellipses.
func ClassifyObject(name string) Class {
	switch name {
	case strokeClass:
		return Class{Kind: ObjectStroke}
	case imageClass:
		return Class{Kind: ObjectImage}
	}
	lower := strings.ToLower(name)
	for _, s := range []string{"ellipse", "oval", "circle"} {
		if strings.Contains(lower, s) {
			return Class{Kind: ObjectShape, Shape: ShapeEllipse}
		}
	}
	return Class{Kind: ObjectShape, Shape: ShapeRectangle}
}

// classify returns the dispatch class of object i. Objects without a
// "$class" entry are ObjectUnknown.
func (g *Graph) classify(i int) Class {
	obj := g.Object(i)
	if obj.Kind() != Dict || !obj.Has("$class") {
		return Class{Kind: ObjectUnknown}
	}
	name, _ := g.ClassOf(i)
	return ClassifyObject(name)
}

// style is the brush state shared by strokes and shapes.
type style struct {
	width   *float64
	color   *Color
	opacity *float64
	blend   *string
	eraser  bool
}

func numberPtr(v Value) *float64 {
	f, ok := v.Number()
	if !ok || !finite(f) {
		return nil
	}
	return &f
}

// blendName renders a blend mode, which may be stored as a name or as a numeric enum.
func blendName(v Value) *string {
	var s string
	switch v.Kind() {
	case String:
		s = v.Str()
	case Integer:
		s = strconv.FormatInt(v.Int64(), 10)
	case Real:
		s = strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	default:
		return nil
	}
	return &s
}

func (g *Graph) objectColor(v Value) *Color {
	if v.Kind() != Dict {
		return nil
	}
	channel := func(key string, def float64) float64 {
		f, ok := g.Field(v, key).Number()
		if !ok || !finite(f) {
			return def
		}
		return f
	}
	return &Color{
		R: channel("UIRed", 0),
		G: channel("UIGreen", 0),
		B: channel("UIBlue", 0),
		A: channel("UIAlpha", 1),
	}
}

// objectStyle reads the brush properties of obj, from "brushProperties"
// or, failing that, "style".
func (g *Graph) objectStyle(obj Value) style {
	var st style
	bp := g.Field(obj, "brushProperties")
	if !bp.Truthy() {
		bp = g.Field(obj, "style")
	}
	if bp.Kind() != Dict {
		return st
	}

	st.width = numberPtr(bp.firstTruthy("brushWidth", "strokeWidth"))
	if col, err := g.Deref(bp.firstTruthy("brushColor", "strokeColor")); err == nil {
		st.color = g.objectColor(col)
	} else {
		logger.Debug(fmt.Sprintf("style: color: %v", err))
	}
	st.opacity = numberPtr(bp.firstTruthy("opacity", "brushOpacity", "UIAlpha"))
	st.blend = blendName(bp.firstTruthy("blendMode", "CGBlendMode"))
	st.eraser = bp.anyTruthy("isErasing", "eraser") || (st.blend != nil && *st.blend == eraseBlendMode)
	return st
}

// strokeBufferField is the canonical point buffer of a stroke object.
const strokeBufferField = "strokePointsNonOptionalAngles"

var (
	mirrorXFields = []string{"mirrorX", "mirroredX", "isMirroredX"}
	mirrorYFields = []string{"mirrorY", "mirroredY", "isMirroredY", "mirrored"}
)

// strokePoints decodes the main point buffer of obj. The canonical field is
// tried first; when it yields fewer than two points every other byte-blob
// field with a length that is a positive multiple of 16 is tried and the
// candidate with the most points kept.
func (g *Graph) strokePoints(obj Value) []Point {
	var poly []Point
	if raw := g.Field(obj, strokeBufferField); raw.Kind() == Data {
		poly = DecodePoints(raw.Bytes())
	}
	if len(poly) >= 2 {
		return poly
	}
	for _, k := range obj.Keys() {
		if k == "$class" {
			continue
		}
		b := obj.Key(k).Bytes()
		if len(b) < pointRecordSize || len(b)%pointRecordSize != 0 {
			continue
		}
		if cand := DecodePoints(b); len(cand) > len(poly) {
			logger.Debug(fmt.Sprintf("stroke: buffer candidate %s: points=%d", k, len(cand)))
			poly = cand
		}
	}
	return poly
}

// recordBuilder turns strokes-graph objects into output records.
type recordBuilder struct {
	g       *Graph
	archive *Archive
	res     ResourceMap
	doc     *Matrix
	maxJump float64

	images  []ImageRecord
	copies  []ImageCopy
	copied  map[string]bool
	strokes []Stroke
}

func (b *recordBuilder) build() {
	for i := 0; i < b.g.Len(); i++ {
		c := b.g.classify(i)
		obj := b.g.Object(i)
		switch c.Kind {
		case ObjectImage:
			b.addImage(obj)
		case ObjectStroke:
			b.addStroke(obj)
		case ObjectShape:
			b.addShape(obj, c.Shape)
		}
	}
	logger.Debug(fmt.Sprintf("records: images=%d strokes=%d", len(b.images), len(b.strokes)), true)
}

// parseSize reads a "{w,h}" size string.
func parseSize(s string) (w, h float64, ok bool) {
	if !strings.HasPrefix(s, "{") {
		return 0, 0, false
	}
	parts := strings.Split(strings.Trim(s, "{}"), ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	h, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || !finite(w) || !finite(h) {
		return 0, 0, false
	}
	return w, h, true
}

func (b *recordBuilder) addImage(obj Value) {
	rec := ImageRecord{
		Type:         "image",
		Transform:    b.g.objectTransform(obj),
		DocTransform: b.doc,
	}
	if w, h, ok := parseSize(b.g.Field(obj, "size").Str()); ok && w != 0 && h != 0 {
		rec.Size = &[2]float64{w, h}
	}
	if crop := b.g.Field(obj, "crop"); crop.Kind() == String {
		s := crop.Str()
		rec.Crop = &s
	}

	idv := b.g.Field(obj, "imageIdentifier")
	if idv.Kind() == String {
		id := idv.Str()
		rec.ImageIdentifier = &id
		if src, ok := b.archive.findImage(id, b.res[id]); ok {
			local := path.Base(src)
			rel := "images/" + local
			rec.Local, rec.Path = &local, &rel
			b.queueCopy(src, local)
		} else {
			logger.Debug(fmt.Sprintf("image: no archive entry for id=%s", id))
		}
	}
	b.images = append(b.images, rec)
}

// queueCopy records one copy instruction per source entry; images sharing
// a source share its destination file.
func (b *recordBuilder) queueCopy(src, dest string) {
	if b.copied == nil {
		b.copied = make(map[string]bool)
	}
	if b.copied[src] {
		return
	}
	b.copied[src] = true
	b.copies = append(b.copies, ImageCopy{Source: src, Dest: dest})
}

func (b *recordBuilder) addStroke(obj Value) {
	st := b.g.objectStyle(obj)

	var keyPts []Point
	if kp := b.g.Field(obj, "keyPoints"); kp.Kind() == Dict {
		keyPts = KeyPoints(b.g, kp)
	}

	poly := b.g.strokePoints(obj)
	if len(poly) < 2 && len(keyPts) > 0 {
		poly = keyPts
	}
	poly = ApplyMatrix(poly, b.g.objectTransform(obj))
	poly = ApplyMatrix(poly, b.doc)
	poly = Mirror(poly, obj.anyTruthy(mirrorXFields...), obj.anyTruthy(mirrorYFields...))

	b.appendStroke(poly, st, keyPts)
}

func (b *recordBuilder) addShape(obj Value, kind ShapeKind) {
	pts, ok := SynthesizeShape(b.g, obj, kind)
	if !ok {
		return
	}
	st := b.g.objectStyle(obj)
	pts = ApplyMatrix(pts, b.g.objectTransform(obj))
	pts = ApplyMatrix(pts, b.doc)
	b.appendStroke(pts, st, nil)
}

func (b *recordBuilder) appendStroke(poly []Point, st style, keyPts []Point) {
	// matrices and mirroring can overflow finite input
	seg := DominantSegment(Dedup(DropNonFinite(poly)), b.maxJump)
	if len(seg) < 2 {
		seg = []Point{}
	}
	if keyPts == nil {
		keyPts = []Point{}
	}
	b.strokes = append(b.strokes, Stroke{
		Type:      "stroke",
		Width:     st.width,
		Color:     st.color,
		Opacity:   st.opacity,
		BlendMode: st.blend,
		Eraser:    st.eraser,
		Polyline:  seg,
		KeyPoints: keyPts,
	})
}
