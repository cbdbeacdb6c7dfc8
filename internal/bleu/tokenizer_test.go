//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTokenizer13a verifies punctuation isolation and digit-sensitive rules.
func TestTokenizer13a(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "plain words", input: "hello world", want: []string{"hello", "world"}},
		{name: "terminal punctuation", input: "Hello, world!", want: []string{"Hello", ",", "world", "!"}},
		{name: "decimal number stays joined", input: "pi is 3.14", want: []string{"pi", "is", "3.14"}},
		{name: "thousands separator stays joined", input: "1,000 items", want: []string{"1,000", "items"}},
		{name: "trailing period splits", input: "the end.", want: []string{"the", "end", "."}},
		{name: "dash after digit splits", input: "covid-19-positive", want: []string{"covid-19", "-", "positive"}},
		{name: "word dash stays joined", input: "well-known fact", want: []string{"well-known", "fact"}},
		{name: "markup escapes", input: "&quot;ok&quot; &amp; done", want: []string{`"`, "ok", `"`, "&", "done"}},
		{name: "skipped marker removed", input: "a <skipped> b", want: []string{"a", "b"}},
		{name: "newline acts as space", input: "a\nb", want: []string{"a", "b"}},
		{name: "hyphenated line break rejoins", input: "to-\ngether", want: []string{"together"}},
		{name: "whitespace squeezed", input: "  a   b  ", want: []string{"a", "b"}},
		{name: "empty", input: "", want: []string{}},
		{name: "symbols isolated", input: "a+b=c", want: []string{"a", "+", "b", "=", "c"}},
	}
	tok := tokenizer13a{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
