// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

// keyedArchive builds a keyed archive plist around objects. Object 0 is
// "$null" by convention, so callers usually start their table with it.
func keyedArchive(t *testing.T, objects ...interface{}) []byte {
	t.Helper()
	top := map[string]interface{}{
		"$archiver": "NSKeyedArchiver",
		"$version":  uint64(100000),
		"$top":      map[string]interface{}{"root": plist.UID(1)},
		"$objects":  objects,
	}
	b, err := plist.Marshal(top, plist.BinaryFormat)
	require.NoError(t, err)
	return b
}

// pointBuffer encodes pts as 16-byte records with the given byte order.
func pointBuffer(order binary.AppendByteOrder, pts ...[2]float32) []byte {
	buf := make([]byte, 0, len(pts)*pointRecordSize)
	for _, p := range pts {
		buf = order.AppendUint32(buf, math.Float32bits(p[0]))
		buf = order.AppendUint32(buf, math.Float32bits(p[1]))
		buf = order.AppendUint32(buf, 0x3f800000) // pressure
		buf = order.AppendUint32(buf, 0)
	}
	return buf
}

// matrixBytes encodes m as 16 little-endian float32s.
func matrixBytes(m [16]float32) []byte {
	buf := make([]byte, 0, matrixSize)
	for _, f := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func translation(tx, ty float32) [16]float32 {
	return [16]float32{0: 1, 5: 1, 10: 1, 12: tx, 13: ty, 15: 1}
}

// glPosition encodes one key point.
func glPosition(x, y float32) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, math.Float32bits(x))
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(y))
}

func classDict(name string) map[string]interface{} {
	return map[string]interface{}{
		"$classname": name,
		"$classes":   []interface{}{name, "NSObject"},
	}
}

// zipContainer packs entries (name, data pairs, in order) into a zip.
func zipContainer(t *testing.T, entries ...interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i+1 < len(entries); i += 2 {
		w, err := zw.Create(entries[i].(string))
		require.NoError(t, err)
		_, err = w.Write(entries[i+1].([]byte))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func loadContainer(t *testing.T, entries ...interface{}) *Archive {
	t.Helper()
	data := zipContainer(t, entries...)
	a, err := NewArchive(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return a
}

// graphOf builds a Graph straight from normalized values.
func graphOf(objects ...interface{}) *Graph {
	g := &Graph{objects: make([]Value, len(objects))}
	for i, o := range objects {
		g.objects[i] = Value{normalize(o)}
	}
	return g
}
