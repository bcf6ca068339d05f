// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import "math"

const (
	// DefaultMaxJump is the largest displacement between two consecutive
	// points that still belongs to the same stroke segment.
	DefaultMaxJump = 2000.0

	dedupEpsilon = 1e-4
)

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Center returns the midpoint of b.
func (b Box) Center() Point {
	return Point{X: 0.5 * (b.MinX + b.MaxX), Y: 0.5 * (b.MinY + b.MaxY)}
}

// BoundingBox returns the bounds of pts. It reports false for no points.
func BoundingBox(pts []Point) (Box, bool) {
	if len(pts) == 0 {
		return Box{}, false
	}
	b := Box{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}

// DropNonFinite returns pts without the points that have a NaN or
// infinite coordinate.
func DropNonFinite(pts []Point) []Point {
	out := pts[:0:0]
	for _, p := range pts {
		if finite(p.X) && finite(p.Y) {
			out = append(out, p)
		}
	}
	return out
}

// Dedup drops every point that lies within 1e-4 of the last kept point on both axes.
// The first point is always kept.
func Dedup(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := []Point{pts[0]}
	for _, p := range pts[1:] {
		last := out[len(out)-1]
		if math.Abs(p.X-last.X) > dedupEpsilon || math.Abs(p.Y-last.Y) > dedupEpsilon {
			out = append(out, p)
		}
	}
	return out
}

// arcLength returns the summed Euclidean length of the polyline pts.
func arcLength(pts []Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return l
}

// DominantSegment splits pts wherever two consecutive points are further apart
// than maxJump and returns the run with the greatest arc length.
// Runs of fewer than two points are discarded. When no run survives, pts is
// returned if it has at least two points, otherwise nil.
// Equal lengths keep the earliest run.
func DominantSegment(pts []Point, maxJump float64) []Point {
	if len(pts) == 0 {
		return nil
	}
	limit := maxJump * maxJump

	var (
		best    []Point
		bestLen = -1.0
	)
	consider := func(run []Point) {
		if len(run) < 2 {
			return
		}
		if l := arcLength(run); l > bestLen {
			best, bestLen = run, l
		}
	}

	start := 0
	for i := 1; i < len(pts); i++ {
		dx, dy := pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
		if dx*dx+dy*dy > limit {
			consider(pts[start:i])
			start = i
		}
	}
	consider(pts[start:])

	if best == nil {
		if len(pts) >= 2 {
			return pts
		}
		return nil
	}
	return best
}

// ApplyMatrix returns pts transformed by m. A nil m leaves pts untouched.
func ApplyMatrix(pts []Point, m *Matrix) []Point {
	if m == nil {
		return pts
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

// Mirror reflects pts about the center of their own bounding box,
// horizontally when x is set and vertically when y is set.
func Mirror(pts []Point, x, y bool) []Point {
	if !x && !y {
		return pts
	}
	b, ok := BoundingBox(pts)
	if !ok {
		return pts
	}
	c := b.Center()
	out := make([]Point, len(pts))
	for i, p := range pts {
		if x {
			p.X = 2*c.X - p.X
		}
		if y {
			p.Y = 2*c.Y - p.Y
		}
		out[i] = p
	}
	return out
}
