//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package metric

// options holds internal configuration for metric computation.
type options struct {
	// sentenceSplit expands answers into sentences before alignment.
	sentenceSplit bool
}

// newOptions applies functional options to build a scoring configuration.
func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures metric computation.
type Option func(*options)

// WithSentenceSplit expands each answer into its component sentences before
// alignment and scoring. Useful when one side stores a paragraph per answer
// and the other stores one sentence per answer.
func WithSentenceSplit(sentenceSplit bool) Option {
	return func(o *options) {
		o.sentenceSplit = sentenceSplit
	}
}
