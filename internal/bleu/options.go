//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package bleu

// options holds internal configuration for BLEU scoring.
type options struct {
	// tokenizer overrides the built-in 13a tokenizer when provided.
	tokenizer Tokenizer
}

// newOptions applies functional options to build a scoring configuration.
func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures BLEU scoring.
type Option func(*options)

// WithTokenizer overrides the built-in tokenizer when provided.
func WithTokenizer(tokenizer Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = tokenizer
	}
}
