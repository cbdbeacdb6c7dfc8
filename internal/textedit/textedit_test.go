//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package textedit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRuneDistance verifies rune-level distances with unit substitution cost.
func TestRuneDistance(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		hyp  string
		want int
	}{
		{name: "identical", ref: "hello world", hyp: "hello world", want: 0},
		{name: "single deletion", ref: "hello world", hyp: "hello word", want: 1},
		{name: "classic substitution mix", ref: "kitten", hyp: "sitting", want: 3},
		{name: "empty reference", ref: "", hyp: "abc", want: 3},
		{name: "empty hypothesis", ref: "abc", hyp: "", want: 3},
		{name: "both empty", ref: "", hyp: "", want: 0},
		{name: "multibyte runes", ref: "héllo", hyp: "hello", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuneDistance(tt.ref, tt.hyp))
		})
	}
}

// TestWordDistance verifies token-level distances with unit substitution cost.
func TestWordDistance(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		hyp  string
		want int
	}{
		{name: "identical", ref: "the quick brown fox", hyp: "the quick brown fox", want: 0},
		{name: "one substitution", ref: "hello world", hyp: "hello word", want: 1},
		{name: "one insertion", ref: "a b", hyp: "a x b", want: 1},
		{name: "one deletion", ref: "a b c", hyp: "a c", want: 1},
		{name: "all replaced", ref: "a b c", hyp: "x y z", want: 3},
		{name: "empty hypothesis", ref: "a b c", hyp: "", want: 3},
		{name: "empty reference", ref: "", hyp: "a b", want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordDistance(strings.Fields(tt.ref), strings.Fields(tt.hyp)))
		})
	}
}

// TestWordDistance_TokenIdentity verifies tokens differing anywhere are distinct units.
func TestWordDistance_TokenIdentity(t *testing.T) {
	assert.Equal(t, 1, WordDistance([]string{"Cat"}, []string{"cat"}))
	assert.Equal(t, 0, WordDistance([]string{"cat", "cat"}, []string{"cat", "cat"}))
}
