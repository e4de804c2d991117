// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"hangul", "논문을 분석하고 있습니다", 5, "논문..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateRunes(tc.in, tc.max))
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"ascii fits", "hello", 5, "hello"},
		{"ascii cut", "hello world", 8, "hello..."},
		{"hangul fits", "연결됨", 6, "연결됨"},
		{"hangul cut", "서버와 연결할 수 없습니다", 7, "서버..."},
		{"narrow", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateWidth(tc.in, tc.max)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, StringWidth(got), tc.max)
		})
	}
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("논문"))
	assert.Equal(t, 0, StringWidth(""))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "aaa bbb\nccc", Wrap("aaa bbb ccc", 7))
	assert.Equal(t, "one\n\ntwo", Wrap("one\n\ntwo", 10))
	assert.Equal(t, "unchanged text", Wrap("unchanged text", 0))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb", "  "))
}
