// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package xtract decodes .concept drawing containers into a portable
// geometry document.
//
// # Overview
//
// A .concept file is a zip container. The drawing itself lives in keyed
// archive property lists (Strokes.plist, Resources.plist, Drawing.plist),
// each of which stores a flat table of objects under the "$objects" key.
// Objects refer to each other through back-references (UIDs) into that
// table instead of nesting.
//
// This package exposes the object table as a Graph of Values, each of
// which has one of the following Kinds:
//
//	Null, for a missing value.
//	Bool, Integer, Real, String, Data and Date, for scalars.
//	Dict, for a dictionary of string keys.
//	Array, for an ordered list.
//	Ref, for a back-reference into the object table.
//
// The accessors on Value return a zero result when the value has a
// different kind, so traversal needs little error checking.
// Back-references are never followed implicitly: callers dereference each
// named field with Graph.Deref or Graph.Field, one level at a time.
package xtract

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/sassoftware/concept-xtract/logger"
	"howett.net/plist"
)

// ErrBadReference reports a back-reference outside the object table.
var ErrBadReference = errors.New("back-reference out of range")

// ref is the decoded form of a back-reference.
type ref uint64

type dict map[string]interface{}

type array []interface{}

// A Value is a single keyed-archive value.
// The zero Value is Null.
type Value struct {
	data interface{}
}

// A Kind specifies the kind of data underlying a Value.
type Kind int

// The value kinds.
const (
	Null Kind = iota
	Bool
	Integer
	Real
	String
	Data
	Date
	Dict
	Array
	Ref
)

var kindNames = [...]string{"null", "bool", "integer", "real", "string", "data", "date", "dict", "array", "ref"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kind reports the kind of value underlying v.
func (v Value) Kind() Kind {
	switch v.data.(type) {
	default:
		return Null
	case bool:
		return Bool
	case int64:
		return Integer
	case float64:
		return Real
	case string:
		return String
	case []byte:
		return Data
	case time.Time:
		return Date
	case dict:
		return Dict
	case array:
		return Array
	case ref:
		return Ref
	}
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.Kind() == Null
}

func (v Value) String() string {
	switch x := v.data.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(x))
	case ref:
		return fmt.Sprintf("@%d", uint64(x))
	case dict:
		return fmt.Sprintf("dict(%d)", len(x))
	case array:
		return fmt.Sprintf("array(%d)", len(x))
	default:
		return fmt.Sprint(x)
	}
}

// Bool returns v's boolean value.
// If v.Kind() != Bool, Bool returns false.
func (v Value) Bool() bool {
	x, _ := v.data.(bool)
	return x
}

// Int64 returns v's integer value.
// If v.Kind() != Integer, Int64 returns 0.
func (v Value) Int64() int64 {
	x, _ := v.data.(int64)
	return x
}

// Float64 returns v's numeric value, converting from integer if necessary.
// If v is not numeric, Float64 returns 0.
func (v Value) Float64() float64 {
	x, _ := v.Number()
	return x
}

// Number returns v's numeric value and whether v is an Integer or a Real.
func (v Value) Number() (float64, bool) {
	switch x := v.data.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// Str returns v's string value.
// If v.Kind() != String, Str returns the empty string.
func (v Value) Str() string {
	x, _ := v.data.(string)
	return x
}

// Bytes returns v's data.
// If v.Kind() != Data, Bytes returns nil.
func (v Value) Bytes() []byte {
	x, _ := v.data.([]byte)
	return x
}

// Key returns the raw value stored under key in the dictionary v.
// The result is not dereferenced.
// If v.Kind() != Dict, Key returns Null.
func (v Value) Key(key string) Value {
	x, ok := v.data.(dict)
	if !ok {
		return Value{}
	}
	return Value{x[key]}
}

// Has reports whether the dictionary v holds key.
func (v Value) Has(key string) bool {
	x, ok := v.data.(dict)
	if !ok {
		return false
	}
	_, ok = x[key]
	return ok
}

// Keys returns the sorted keys of the dictionary v.
// If v.Kind() != Dict, Keys returns nil.
func (v Value) Keys() []string {
	x, ok := v.data.(dict)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Index returns the i'th element of the array v.
// If v.Kind() != Array or i is out of bounds, Index returns Null.
func (v Value) Index(i int) Value {
	x, ok := v.data.(array)
	if !ok || i < 0 || i >= len(x) {
		return Value{}
	}
	return Value{x[i]}
}

// Len returns the length of the array v, or 0 for any other kind.
func (v Value) Len() int {
	x, ok := v.data.(array)
	if !ok {
		return 0
	}
	return len(x)
}

// Truthy reports whether v counts as set: true, a non-zero number,
// a non-empty string, data, dictionary or array, or any back-reference.
func (v Value) Truthy() bool {
	switch x := v.data.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []byte:
		return len(x) > 0
	case dict:
		return len(x) > 0
	case array:
		return len(x) > 0
	case ref, time.Time:
		return true
	}
	return false
}

// firstTruthy returns the first truthy raw field among keys.
func (v Value) firstTruthy(keys ...string) Value {
	for _, k := range keys {
		if f := v.Key(k); f.Truthy() {
			return f
		}
	}
	return Value{}
}

// anyTruthy reports whether any of the raw fields keys is truthy.
func (v Value) anyTruthy(keys ...string) bool {
	return v.firstTruthy(keys...).Truthy()
}

// A Graph is the object table of one keyed archive.
type Graph struct {
	objects []Value
}

// DecodeGraph parses a keyed archive property list (binary or XML).
// It returns a nil Graph and no error when the top level has no "$objects" table.
func DecodeGraph(data []byte) (*Graph, error) {
	var top interface{}
	if _, err := plist.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode plist: %w", err)
	}
	root, ok := normalize(top).(dict)
	if !ok {
		logger.Debug("graph: top level is not a dictionary")
		return nil, nil
	}
	objs, ok := root["$objects"].(array)
	if !ok {
		logger.Debug("graph: no $objects table")
		return nil, nil
	}

	g := &Graph{objects: make([]Value, len(objs))}
	for i, o := range objs {
		g.objects[i] = Value{o}
	}
	logger.Debug(fmt.Sprintf("graph: decoded objects=%d", len(g.objects)), true)
	return g, nil
}

// normalize converts plist-decoded data into the value types used by Value.
func normalize(x interface{}) interface{} {
	switch x := x.(type) {
	case map[string]interface{}:
		d := make(dict, len(x))
		for k, e := range x {
			d[k] = normalize(e)
		}
		return d
	case []interface{}:
		a := make(array, len(x))
		for i, e := range x {
			a[i] = normalize(e)
		}
		return a
	case plist.UID:
		return ref(x)
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case int64:
		return x
	case int:
		return int64(x)
	case float32:
		return float64(x)
	case float64, bool, string, []byte, time.Time:
		return x
	}
	return nil
}

// Len returns the number of objects in the table.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.objects)
}

// Object returns the i'th object, or Null when i is out of range.
func (g *Graph) Object(i int) Value {
	if g == nil || i < 0 || i >= len(g.objects) {
		return Value{}
	}
	return g.objects[i]
}

// Deref resolves a back-reference one level. Any other value is returned unchanged.
// The result may itself hold further back-references.
func (g *Graph) Deref(v Value) (Value, error) {
	x, ok := v.data.(ref)
	if !ok {
		return v, nil
	}
	if g == nil || uint64(x) >= uint64(len(g.objects)) {
		return Value{}, fmt.Errorf("%w: %d (objects=%d)", ErrBadReference, uint64(x), g.Len())
	}
	return g.objects[x], nil
}

// Field returns obj[key] dereferenced once.
// A broken reference is logged and yields Null so only that field is lost.
func (g *Graph) Field(obj Value, key string) Value {
	v, err := g.Deref(obj.Key(key))
	if err != nil {
		logger.Debug(fmt.Sprintf("graph: field %q: %v", key, err))
		return Value{}
	}
	return v
}

// ClassOf returns the class name of object i, resolved through its "$class"
// reference to the "$classname" entry.
func (g *Graph) ClassOf(i int) (string, bool) {
	return g.className(g.Object(i))
}

func (g *Graph) className(obj Value) (string, bool) {
	if !obj.Has("$class") {
		return "", false
	}
	cls := g.Field(obj, "$class")
	name := cls.Key("$classname")
	if name.Kind() != String {
		return "", false
	}
	return name.Str(), true
}
