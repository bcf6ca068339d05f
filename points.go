// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/sassoftware/concept-xtract/logger"
)

// pointRecordSize is the stride of a stroke point buffer:
// float32 x, float32 y, then two 32-bit attributes that are ignored.
const pointRecordSize = 16

// A Point is a finite 2D coordinate. It serializes as [x, y].
type Point struct {
	X, Y float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(b []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return err
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DecodePoints decodes a stroke point buffer.
// Little-endian is tried first; big-endian only when little-endian yields no
// point at all. Records with a non-finite coordinate are dropped.
func DecodePoints(raw []byte) []Point {
	pts := decodePointRecords(raw, binary.LittleEndian)
	if len(pts) > 0 {
		return pts
	}
	pts = decodePointRecords(raw, binary.BigEndian)
	if len(pts) > 0 {
		logger.Debug(fmt.Sprintf("points: big-endian fallback used: records=%d", len(raw)/pointRecordSize))
	}
	return pts
}

func decodePointRecords(raw []byte, order binary.ByteOrder) []Point {
	if len(raw) < pointRecordSize || len(raw)%pointRecordSize != 0 {
		return nil
	}
	n := len(raw) / pointRecordSize
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		rec := raw[i*pointRecordSize:]
		x := float64(math.Float32frombits(order.Uint32(rec[0:4])))
		y := float64(math.Float32frombits(order.Uint32(rec[4:8])))
		if finite(x) && finite(y) {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// arrayElements returns the element list of a keyed collection:
// "NS.objects", or "NS.values" when that is missing or empty.
func arrayElements(coll Value) Value {
	if objs := coll.Key("NS.objects"); objs.Len() > 0 {
		return objs
	}
	return coll.Key("NS.values")
}

// KeyPoints extracts the points of a keyed collection whose elements are
// dictionaries carrying an 8-byte "glPosition" (two little-endian float32).
// Elements that do not fit are skipped.
func KeyPoints(g *Graph, coll Value) []Point {
	elems := arrayElements(coll)
	var pts []Point
	for i := 0; i < elems.Len(); i++ {
		kp, err := g.Deref(elems.Index(i))
		if err != nil {
			logger.Debug(fmt.Sprintf("points: key point %d: %v", i, err))
			continue
		}
		pos := kp.Key("glPosition").Bytes()
		if len(pos) != 8 {
			continue
		}
		x := float64(math.Float32frombits(binary.LittleEndian.Uint32(pos[0:4])))
		y := float64(math.Float32frombits(binary.LittleEndian.Uint32(pos[4:8])))
		if finite(x) && finite(y) {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}
