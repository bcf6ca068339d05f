// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package logger

import (
	"bytes"
	"testing"

	"github.com/sassoftware/concept-xtract/tracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	level   LogLevel
	msg     string
	keyvals []interface{}
}

func capture(t *testing.T) *[]entry {
	t.Helper()
	var got []entry
	SetLogger(func(level LogLevel, msg string, keyvals ...interface{}) {
		got = append(got, entry{level, msg, keyvals})
	})
	t.Cleanup(func() {
		SetLogger(func(LogLevel, string, ...interface{}) {})
		tracer.Flush(&bytes.Buffer{})
	})
	return &got
}

func TestLevels(t *testing.T) {
	got := capture(t)
	Debug("d")
	Info("i", "k", 1)
	Error("e")

	require.Len(t, *got, 3)
	assert.Equal(t, DebugLevel, (*got)[0].level)
	assert.Equal(t, InfoLevel, (*got)[1].level)
	assert.Equal(t, []interface{}{"k", 1}, (*got)[1].keyvals)
	assert.Equal(t, ErrorLevel, (*got)[2].level)
}

func TestTraceFlag(t *testing.T) {
	got := capture(t)
	tracer.Flush(&bytes.Buffer{})

	Debug("traced", true)
	Debug("not traced", false)
	Info("also traced", "k", "v", true)
	Error("errors never trace", true)

	var buf bytes.Buffer
	tracer.Flush(&buf)
	assert.Equal(t, "traced\nalso traced\n", buf.String())

	assert.Empty(t, (*got)[0].keyvals, "trace flag is stripped")
	assert.Equal(t, []interface{}{"k", "v"}, (*got)[2].keyvals)
	assert.Equal(t, []interface{}{true}, (*got)[3].keyvals)
}

func TestSetLogger_Nil(t *testing.T) {
	got := capture(t)
	SetLogger(nil)
	Info("still captured")
	assert.Len(t, *got, 1)
}
