//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package report

import "fmt"

// options holds configuration for delimited writers.
type options struct {
	// comma is the field delimiter.
	comma rune
}

// Option configures options.
type Option func(*options)

func newOptions(opt ...Option) *options {
	o := &options{
		comma: ',',
	}
	for _, op := range opt {
		op(o)
	}
	return o
}

// WithComma sets the field delimiter. Only comma and tab are supported, the
// same formats the dataset loader accepts.
func WithComma(comma rune) Option {
	return func(o *options) {
		if comma != ',' && comma != '\t' {
			panic(fmt.Sprintf("unsupported delimiter %q", comma))
		}
		o.comma = comma
	}
}
