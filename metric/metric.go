//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package metric scores predicted answer sequences against reference answer
// sequences, producing word error rate, character error rate, and BLEU.
//
// The two sequences are aligned by index. When their lengths differ the
// shorter one is padded with empty strings, so surplus answers on either
// side count as pure insertions or deletions instead of being dropped.
package metric

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/internal/bleu"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/internal/textedit"
)

// Scores holds the three answer quality metrics for one aligned answer set.
type Scores struct {
	// WER is the word error rate: word edits summed over answer pairs
	// divided by the total reference word count.
	WER float64 `json:"wer_error"`
	// CER is the character error rate: rune edits summed over answer pairs
	// divided by the total reference rune count.
	CER float64 `json:"cer_error"`
	// BLEU is the corpus BLEU score in range [0, 100].
	BLEU float64 `json:"bleu_score"`
}

// Compute scores hyps against refs. Answers are paired by index after
// padding, each pair contributing its edit distance to WER and CER and one
// segment to the BLEU corpus.
func Compute(ctx context.Context, refs, hyps []string, opt ...Option) (Scores, error) {
	if ctx == nil {
		return Scores{}, fmt.Errorf("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return Scores{}, err
	}

	opts := newOptions(opt...)
	if opts.sentenceSplit {
		var err error
		if refs, err = splitSentences(refs); err != nil {
			return Scores{}, fmt.Errorf("split reference sentences: %w", err)
		}
		if hyps, err = splitSentences(hyps); err != nil {
			return Scores{}, fmt.Errorf("split hypothesis sentences: %w", err)
		}
	}
	refs, hyps = Align(refs, hyps)

	var scores Scores
	scores.WER = wordErrorRate(refs, hyps)
	if err := ctx.Err(); err != nil {
		return Scores{}, err
	}
	scores.CER = charErrorRate(refs, hyps)
	if err := ctx.Err(); err != nil {
		return Scores{}, err
	}
	bleuScore, err := bleu.Corpus(refs, hyps)
	if err != nil {
		return Scores{}, fmt.Errorf("compute bleu: %w", err)
	}
	scores.BLEU = bleuScore.Score
	return scores, nil
}

// Align pads the shorter of the two answer sequences with empty strings so
// both have equal length. The inputs are never mutated.
func Align(refs, hyps []string) ([]string, []string) {
	if len(refs) == len(hyps) {
		return refs, hyps
	}
	n := len(refs)
	if len(hyps) > n {
		n = len(hyps)
	}
	paddedRefs := make([]string, n)
	copy(paddedRefs, refs)
	paddedHyps := make([]string, n)
	copy(paddedHyps, hyps)
	return paddedRefs, paddedHyps
}

// wordErrorRate sums word level edit distances over aligned answer pairs and
// normalizes by the total reference word count.
func wordErrorRate(refs, hyps []string) float64 {
	var edits, refWords, hypWords int
	for i := range refs {
		refTokens := strings.Fields(refs[i])
		hypTokens := strings.Fields(hyps[i])
		edits += textedit.WordDistance(refTokens, hypTokens)
		refWords += len(refTokens)
		hypWords += len(hypTokens)
	}
	return errorRate(edits, refWords, hypWords)
}

// charErrorRate sums rune level edit distances over aligned answer pairs and
// normalizes by the total reference rune count.
func charErrorRate(refs, hyps []string) float64 {
	var edits, refRunes, hypRunes int
	for i := range refs {
		edits += textedit.RuneDistance(refs[i], hyps[i])
		refRunes += utf8.RuneCountInString(refs[i])
		hypRunes += utf8.RuneCountInString(hyps[i])
	}
	return errorRate(edits, refRunes, hypRunes)
}

// errorRate divides edits by the reference unit count. An empty reference
// scores 0.0 against an empty hypothesis and 1.0 against anything else.
func errorRate(edits, refUnits, hypUnits int) float64 {
	if refUnits == 0 {
		if hypUnits == 0 {
			return 0.0
		}
		return 1.0
	}
	return float64(edits) / float64(refUnits)
}
