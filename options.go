package pipelinemetrics

import (
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/metric"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
	resultinmemory "github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result/inmemory"
)

type options struct {
	resultManager result.Manager
	metricOptions []metric.Option
}

func newOptions(opt ...Option) *options {
	opts := &options{
		resultManager: resultinmemory.New(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

type Option func(*options)

func WithResultManager(m result.Manager) Option {
	return func(o *options) {
		o.resultManager = m
	}
}

func WithMetricOptions(opt ...metric.Option) Option {
	return func(o *options) {
		o.metricOptions = append(o.metricOptions, opt...)
	}
}
