// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/sassoftware/concept-xtract/logger"
)

// EllipseSegments is the number of segments used to approximate an ellipse.
const EllipseSegments = 64

// Rect is a rectangle descriptor as stored in "{{x,y},{w,h}}" strings.
type Rect struct {
	X, Y, W, H float64
}

var rectPattern = regexp.MustCompile(`\{\{\s*([-\d.]+)\s*,\s*([-\d.]+)\s*\}\s*,\s*\{\s*([-\d.]+)\s*,\s*([-\d.]+)\s*\}\}`)

// ParseRect finds a "{{x,y},{w,h}}" descriptor in s.
func ParseRect(s string) (Rect, bool) {
	m := rectPattern.FindStringSubmatch(s)
	if m == nil {
		return Rect{}, false
	}
	var f [4]float64
	for i := range f {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Rect{}, false
		}
		f[i] = v
	}
	return Rect{X: f[0], Y: f[1], W: f[2], H: f[3]}, true
}

// Ellipse approximates the ellipse inscribed in r with a closed polygon of
// segments+1 points; the first and last points coincide.
// A segments count below 1 means EllipseSegments.
func Ellipse(r Rect, segments int) []Point {
	if segments < 1 {
		segments = EllipseSegments
	}
	cx, cy := r.X+r.W*0.5, r.Y+r.H*0.5
	rx, ry := math.Abs(r.W)*0.5, math.Abs(r.H)*0.5
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments) * 2 * math.Pi
		pts = append(pts, Point{X: cx + rx*math.Cos(t), Y: cy + ry*math.Sin(t)})
	}
	// cos/sin of 2π are not exact
	pts[segments] = pts[0]
	return pts
}

// Rectangle returns the closed five point outline of r.
func Rectangle(r Rect) []Point {
	return []Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
		{r.X, r.Y},
	}
}

// A shapeSource tries to produce an outline from one object.
type shapeSource func(g *Graph, obj Value, kind ShapeKind) ([]Point, bool)

// shapeSources are tried in order; the first that succeeds wins.
var shapeSources = []shapeSource{
	rectShape,
	pointArrayShape,
}

var (
	rectFields       = []string{"shapeRect", "rect", "bounds", "frame"}
	pointArrayFields = []string{"points", "vertices", "keyPoints", "controlPoints", "pathPoints"}
	closedFields     = []string{"closed", "isClosed"}
)

// objectRect returns the first rectangle descriptor found among rectFields.
func (g *Graph) objectRect(obj Value) (Rect, bool) {
	for _, k := range rectFields {
		v := g.Field(obj, k)
		if v.Kind() != String {
			continue
		}
		if r, ok := ParseRect(v.Str()); ok {
			return r, true
		}
	}
	return Rect{}, false
}

func rectShape(g *Graph, obj Value, kind ShapeKind) ([]Point, bool) {
	r, ok := g.objectRect(obj)
	if !ok {
		return nil, false
	}
	pts := Rectangle(r)
	if kind == ShapeEllipse {
		pts = Ellipse(r, EllipseSegments)
	}
	if len(DropNonFinite(pts)) != len(pts) {
		logger.Debug(fmt.Sprintf("shape: rect %v overflows", r))
		return nil, false
	}
	return pts, true
}

func pointArrayShape(g *Graph, obj Value, _ ShapeKind) ([]Point, bool) {
	for _, k := range pointArrayFields {
		coll := g.Field(obj, k)
		if coll.Kind() != Dict {
			continue
		}
		pts := KeyPoints(g, coll)
		if len(pts) < 2 {
			continue
		}
		if obj.anyTruthy(closedFields...) && pts[0] != pts[len(pts)-1] {
			pts = append(pts, pts[0])
		}
		logger.Debug(fmt.Sprintf("shape: outline from %s: points=%d", k, len(pts)))
		return pts, true
	}
	return nil, false
}

// SynthesizeShape builds the outline of a shape object, from its rectangle
// descriptor if it has one and from its explicit point array otherwise.
// It reports false when no outline of at least two points can be built.
func SynthesizeShape(g *Graph, obj Value, kind ShapeKind) ([]Point, bool) {
	for _, src := range shapeSources {
		if pts, ok := src(g, obj, kind); ok && len(pts) >= 2 {
			return pts, true
		}
	}
	return nil, false
}
