//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package textedit provides the edit distances behind word and character
// error rates.
package textedit

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// unitCosts charges one edit per insertion, deletion, or substitution.
// The library default charges substitutions as two edits.
var unitCosts = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// RuneDistance returns the Levenshtein distance between two strings at rune
// granularity.
func RuneDistance(ref, hyp string) int {
	return levenshtein.DistanceForStrings([]rune(ref), []rune(hyp), unitCosts)
}

// WordDistance returns the Levenshtein distance between two token sequences.
// Distinct tokens are mapped to synthetic runes so the rune-based engine can
// align them; only token identity matters for the distance.
func WordDistance(ref, hyp []string) int {
	vocab := make(map[string]rune, len(ref)+len(hyp))
	return levenshtein.DistanceForStrings(encodeTokens(ref, vocab), encodeTokens(hyp, vocab), unitCosts)
}

// encodeTokens maps each distinct token to a stable synthetic rune.
func encodeTokens(tokens []string, vocab map[string]rune) []rune {
	encoded := make([]rune, len(tokens))
	for i, token := range tokens {
		r, ok := vocab[token]
		if !ok {
			r = rune(len(vocab) + 1)
			vocab[token] = r
		}
		encoded[i] = r
	}
	return encoded
}
