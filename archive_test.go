// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenArchive_Missing(t *testing.T) {
	_, err := OpenArchive(filepath.Join(t.TempDir(), "absent.concept"))
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestOpenArchive_Directory(t *testing.T) {
	_, err := OpenArchive(t.TempDir())
	assert.ErrorIs(t, err, ErrNotArchive)
}

func TestOpenArchive_NotZip(t *testing.T) {
	path := writeContainer(t, t.TempDir(), "x.concept", []byte("PK? no, just text"))
	_, err := OpenArchive(path)
	assert.ErrorIs(t, err, ErrNotArchive)
}

func TestNewArchive_Entries(t *testing.T) {
	a := loadContainer(t,
		"b.txt", []byte("bee"),
		"a.txt", []byte("ay"),
		"dir/", []byte{},
		"b.txt", []byte("second"),
	)
	assert.Equal(t, []string{"b.txt", "a.txt"}, a.Names(), "archive order, no dirs, first duplicate wins")

	data, ok := a.Read("b.txt")
	require.True(t, ok)
	assert.Equal(t, []byte("bee"), data)

	assert.True(t, a.Has("a.txt"))
	assert.False(t, a.Has("dir/"))
	_, ok = a.Read("c.txt")
	assert.False(t, ok)

	names := a.Names()
	names[0] = "mutated"
	assert.Equal(t, "b.txt", a.Names()[0], "Names returns a copy")
}

func TestNewArchive_Empty(t *testing.T) {
	data := zipContainer(t)
	a, err := NewArchive(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, a.Names())
}

func TestArchive_FindImage(t *testing.T) {
	a := loadContainer(t,
		"Strokes.plist", []byte{},
		"abc.png", []byte("outside folder"),
		"ImportedImages/zz-abc-1.jpg", []byte("substring"),
		"ImportedImages/abc.png", []byte("exact"),
		"ImportedImages/other.png", []byte("other"),
	)

	tests := []struct {
		name   string
		id     string
		ext    string
		want   string
		wantOK bool
	}{
		{"exact path wins", "abc", "png", "ImportedImages/abc.png", true},
		{"unknown extension falls back to substring", "abc", "", "ImportedImages/zz-abc-1.jpg", true},
		{"wrong extension falls back to substring", "abc", "tiff", "ImportedImages/zz-abc-1.jpg", true},
		{"substring only", "other", "", "ImportedImages/other.png", true},
		{"not found", "missing", "png", "", false},
		{"empty id", "", "png", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.findImage(tt.id, tt.ext)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
