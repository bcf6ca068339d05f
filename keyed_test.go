// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func TestDecodeGraph_Binary(t *testing.T) {
	data := keyedArchive(t,
		"$null",
		map[string]interface{}{
			"$class": plist.UID(2),
			"name":   plist.UID(3),
			"count":  uint64(7),
			"scale":  1.5,
			"blob":   []byte{1, 2, 3},
			"flag":   true,
		},
		classDict("Stroke"),
		"hello",
	)

	g, err := DecodeGraph(data)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 4, g.Len())

	obj := g.Object(1)
	assert.Equal(t, Dict, obj.Kind())
	assert.Equal(t, Ref, obj.Key("name").Kind())
	assert.Equal(t, Integer, obj.Key("count").Kind())
	assert.Equal(t, int64(7), obj.Key("count").Int64())
	assert.Equal(t, Real, obj.Key("scale").Kind())
	assert.Equal(t, 1.5, obj.Key("scale").Float64())
	assert.Equal(t, []byte{1, 2, 3}, obj.Key("blob").Bytes())
	assert.True(t, obj.Key("flag").Bool())

	assert.Equal(t, "hello", g.Field(obj, "name").Str())

	name, ok := g.ClassOf(1)
	require.True(t, ok)
	assert.Equal(t, "Stroke", name)

	_, ok = g.ClassOf(3)
	assert.False(t, ok, "plain strings carry no class")
}

func TestDecodeGraph_XML(t *testing.T) {
	top := map[string]interface{}{
		"$objects": []interface{}{"$null", map[string]interface{}{"size": "{3,4}", "n": uint64(2)}},
	}
	data, err := plist.Marshal(top, plist.XMLFormat)
	require.NoError(t, err)

	g, err := DecodeGraph(data)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "{3,4}", g.Object(1).Key("size").Str())
	assert.Equal(t, int64(2), g.Object(1).Key("n").Int64())
}

func TestDecodeGraph_NoObjects(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{"other": "x"}, plist.BinaryFormat)
	require.NoError(t, err)

	g, err := DecodeGraph(data)
	assert.NoError(t, err)
	assert.Nil(t, g, "missing $objects is not an error")
	assert.Equal(t, 0, g.Len())
}

func TestDecodeGraph_Garbage(t *testing.T) {
	g, err := DecodeGraph([]byte("bplist00 definitely not a plist"))
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestGraph_Deref(t *testing.T) {
	g := graphOf(
		"$null",
		map[string]interface{}{"inner": plist.UID(2)},
		"leaf",
	)

	// non-references pass through
	v, err := g.Deref(Value{"x"})
	require.NoError(t, err)
	assert.Equal(t, "x", v.Str())

	// single level only
	v, err = g.Deref(Value{ref(1)})
	require.NoError(t, err)
	assert.Equal(t, Dict, v.Kind())
	assert.Equal(t, Ref, v.Key("inner").Kind(), "nested references stay unresolved")

	_, err = g.Deref(Value{ref(99)})
	assert.ErrorIs(t, err, ErrBadReference)

	var nilGraph *Graph
	_, err = nilGraph.Deref(Value{ref(0)})
	assert.ErrorIs(t, err, ErrBadReference)
}

func TestGraph_FieldBadReference(t *testing.T) {
	g := graphOf(
		"$null",
		map[string]interface{}{"good": plist.UID(0), "bad": plist.UID(42)},
	)
	obj := g.Object(1)
	assert.Equal(t, "$null", g.Field(obj, "good").Str())
	assert.True(t, g.Field(obj, "bad").IsNull(), "broken reference only loses that field")
	assert.True(t, g.Field(obj, "absent").IsNull())
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Value{}, false},
		{"true", Value{true}, true},
		{"false", Value{false}, false},
		{"zero int", Value{int64(0)}, false},
		{"int", Value{int64(3)}, true},
		{"zero real", Value{0.0}, false},
		{"real", Value{0.5}, true},
		{"empty string", Value{""}, false},
		{"string", Value{"x"}, true},
		{"empty data", Value{[]byte{}}, false},
		{"empty dict", Value{dict{}}, false},
		{"array", Value{array{int64(1)}}, true},
		{"ref", Value{ref(0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestValue_AccessorsOnWrongKind(t *testing.T) {
	v := Value{"text"}
	assert.Equal(t, int64(0), v.Int64())
	assert.Equal(t, 0.0, v.Float64())
	assert.Nil(t, v.Bytes())
	assert.True(t, v.Key("k").IsNull())
	assert.Nil(t, v.Keys())
	assert.Equal(t, 0, v.Len())
	assert.True(t, v.Index(0).IsNull())
	_, ok := v.Number()
	assert.False(t, ok)
}

func TestValue_KeysSorted(t *testing.T) {
	v := Value{dict{"b": int64(1), "a": int64(2), "c": int64(3)}}
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ref", Ref.String())
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
