// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sassoftware/concept-xtract/logger"
)

// matrixSize is the byte length of 16 little-endian float32 components.
const matrixSize = 64

// A Matrix is a 4x4 transform stored row-major as 16 components.
// Only the components that move a 2D point are used:
//
//	x' = m[0]*x + m[4]*y + m[12]
//	y' = m[1]*x + m[5]*y + m[13]
type Matrix [16]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{0: 1, 5: 1, 10: 1, 15: 1}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[4]*p.Y + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[13],
	}
}

// ReadMatrix decodes the first 64 bytes of b as 16 little-endian float32s.
// It fails when b is too short or any component is not finite.
func ReadMatrix(b []byte) (*Matrix, bool) {
	if len(b) < matrixSize {
		return nil, false
	}
	var m Matrix
	for i := range m {
		f := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if isNonFinite32(f) {
			return nil, false
		}
		m[i] = float64(f)
	}
	return &m, true
}

func isNonFinite32(f float32) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

// transformFields are the object fields that may hold a placement matrix, in priority order.
var transformFields = []string{"diSavedTransform", "localTransform", "transform"}

// objectTransform returns the first decodable matrix among transformFields.
func (g *Graph) objectTransform(obj Value) *Matrix {
	for _, k := range transformFields {
		v := g.Field(obj, k)
		if v.Kind() != Data {
			continue
		}
		if m, ok := ReadMatrix(v.Bytes()); ok {
			return m
		}
		logger.Debug(fmt.Sprintf("transform: field %q is not a matrix (len=%d)", k, len(v.Bytes())))
	}
	return nil
}

// DocumentTransform scans the drawing graph for the document placement matrix.
// The first byte-blob field of at least 64 bytes, on any dictionary object in
// table order, is taken as the matrix. Matching is by length only, not by field
// name; fields within one object are visited in sorted key order.
func DocumentTransform(g *Graph) *Matrix {
	for i := 0; i < g.Len(); i++ {
		obj := g.Object(i)
		if obj.Kind() != Dict {
			continue
		}
		for _, k := range obj.Keys() {
			b := obj.Key(k).Bytes()
			if len(b) < matrixSize {
				continue
			}
			if m, ok := ReadMatrix(b); ok {
				logger.Debug(fmt.Sprintf("transform: document matrix found: object=%d field=%s", i, k), true)
				return m
			}
		}
	}
	return nil
}
