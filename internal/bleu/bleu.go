//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package bleu implements corpus BLEU scoring for text evaluation.
//
// Scoring follows the WMT reference implementation: mteval-13a
// tokenization, n-gram orders up to four, exponential smoothing of
// zero-match precisions, and effective-order matching so that corpora whose
// segments are shorter than the maximum order are scored over the orders
// they can actually produce. Scores are on the 0-100 scale.
package bleu

import (
	"fmt"
	"math"
	"strings"
)

// maxNGramOrder is the highest n-gram order contributing to the score.
const maxNGramOrder = 4

// Score holds a corpus BLEU score and its components.
type Score struct {
	// Score is the BLEU score in range [0, 100].
	Score float64
	// Precisions are the modified n-gram precisions per order, in percent.
	Precisions [maxNGramOrder]float64
	// BrevityPenalty is the length penalty applied to the precision mean in range [0, 1].
	BrevityPenalty float64
	// HypothesisLength is the total hypothesis token count.
	HypothesisLength int
	// ReferenceLength is the total reference token count.
	ReferenceLength int
}

// Corpus scores a hypothesis corpus against a reference corpus. The two
// slices are aligned by index, one reference segment per hypothesis segment.
func Corpus(refs, hyps []string, opt ...Option) (Score, error) {
	if len(refs) != len(hyps) {
		return Score{}, fmt.Errorf("reference segment count %d does not match hypothesis segment count %d", len(refs), len(hyps))
	}
	opts := newOptions(opt...)
	tok := opts.tokenizer
	if tok == nil {
		tok = tokenizer13a{}
	}

	var correct, total [maxNGramOrder]int
	var refLen, hypLen int
	for i := range hyps {
		refTokens := tok.Tokenize(refs[i])
		hypTokens := tok.Tokenize(hyps[i])
		refLen += len(refTokens)
		hypLen += len(hypTokens)
		for n := 1; n <= maxNGramOrder && n <= len(hypTokens); n++ {
			total[n-1] += len(hypTokens) - n + 1
			correct[n-1] += countMatches(refTokens, hypTokens, n)
		}
	}
	return scoreFromStats(correct, total, refLen, hypLen), nil
}

// countMatches counts hypothesis n-grams clipped by their reference counts.
func countMatches(refTokens, hypTokens []string, n int) int {
	hypNGrams := createNGrams(hypTokens, n)
	if len(hypNGrams) == 0 {
		return 0
	}
	refNGrams := createNGrams(refTokens, n)
	var matches int
	for key, cnt := range hypNGrams {
		refCnt, ok := refNGrams[key]
		if !ok {
			continue
		}
		if refCnt < cnt {
			cnt = refCnt
		}
		matches += cnt
	}
	return matches
}

// createNGrams builds a multiset of n-grams keyed by a delimiter-joined token sequence.
func createNGrams(tokens []string, n int) map[string]int {
	if n <= 0 || len(tokens) < n {
		return map[string]int{}
	}
	ngrams := make(map[string]int, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		key := strings.Join(tokens[i:i+n], "\x00")
		ngrams[key]++
	}
	return ngrams
}

// scoreFromStats folds the accumulated corpus statistics into a Score.
func scoreFromStats(correct, total [maxNGramOrder]int, refLen, hypLen int) Score {
	score := Score{
		BrevityPenalty:   1.0,
		HypothesisLength: hypLen,
		ReferenceLength:  refLen,
	}
	// Only orders the hypothesis corpus produced n-grams for enter the
	// geometric mean.
	effOrder := 0
	smooth := 1.0
	for n := 1; n <= maxNGramOrder; n++ {
		if total[n-1] == 0 {
			break
		}
		effOrder = n
		if correct[n-1] == 0 {
			smooth *= 2
			score.Precisions[n-1] = 100.0 / (smooth * float64(total[n-1]))
			continue
		}
		score.Precisions[n-1] = 100.0 * float64(correct[n-1]) / float64(total[n-1])
	}
	if hypLen < refLen {
		if hypLen == 0 {
			score.BrevityPenalty = 0.0
		} else {
			score.BrevityPenalty = math.Exp(1.0 - float64(refLen)/float64(hypLen))
		}
	}
	if effOrder == 0 || score.BrevityPenalty == 0.0 {
		return score
	}
	var logSum float64
	for n := 0; n < effOrder; n++ {
		logSum += math.Log(score.Precisions[n])
	}
	score.Score = score.BrevityPenalty * math.Exp(logSum/float64(effOrder))
	return score
}
