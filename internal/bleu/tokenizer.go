//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"regexp"
	"strings"
)

var (
	// punctRE matches the mteval-v13a punctuation set, excluding period,
	// comma, and dash, which carry digit-sensitive rules below.
	punctRE = regexp.MustCompile("([{-~\\[-` -&(-+:-@/])")
	// periodCommaAfterNonDigitRE matches a period or comma preceded by a non-digit.
	periodCommaAfterNonDigitRE = regexp.MustCompile(`([^0-9])([\.,])`)
	// periodCommaBeforeNonDigitRE matches a period or comma followed by a non-digit.
	periodCommaBeforeNonDigitRE = regexp.MustCompile(`([\.,])([^0-9])`)
	// dashAfterDigitRE matches a dash preceded by a digit.
	dashAfterDigitRE = regexp.MustCompile(`([0-9])(-)`)
)

// Tokenizer tokenizes a segment into a list of tokens.
type Tokenizer interface {
	// Tokenize splits input text into tokens.
	Tokenize(text string) []string
}

// tokenizer13a replicates the mteval-v13a tokenization used by WMT.
type tokenizer13a struct{}

// Tokenize normalizes markup escapes, isolates punctuation, and splits on whitespace.
func (tokenizer13a) Tokenize(text string) []string {
	line := strings.ReplaceAll(text, "<skipped>", "")
	line = strings.ReplaceAll(line, "-\n", "")
	line = strings.ReplaceAll(line, "\n", " ")
	if strings.Contains(line, "&") {
		line = strings.ReplaceAll(line, "&quot;", `"`)
		line = strings.ReplaceAll(line, "&amp;", "&")
		line = strings.ReplaceAll(line, "&lt;", "<")
		line = strings.ReplaceAll(line, "&gt;", ">")
	}
	line = " " + line + " "
	line = punctRE.ReplaceAllString(line, " ${1} ")
	line = periodCommaAfterNonDigitRE.ReplaceAllString(line, "${1} ${2} ")
	line = periodCommaBeforeNonDigitRE.ReplaceAllString(line, " ${1} ${2}")
	line = dashAfterDigitRE.ReplaceAllString(line, "${1} - ")
	return strings.Fields(line)
}
