//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package pipelinemetrics scores predicted document QA answers against
// reference answers. It loads two aligned delimited tables, computes word,
// character, and BLEU error metrics per row, aggregates them per document
// class and per (document class, question type) pair, and pools one score
// triple over the whole corpus.
package pipelinemetrics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/dataset"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/epochtime"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/log"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/metric"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
)

// Evaluator scores a prediction table against its reference table.
type Evaluator interface {
	// PerRowMetrics computes WER, CER, and BLEU for every aligned row pair,
	// one output row per input row in load order.
	PerRowMetrics(ctx context.Context) ([]result.RowMetrics, error)
	// MetricsByDocClass averages row metrics per document class. Groups are
	// ordered by descending row count, ties by first appearance.
	MetricsByDocClass(ctx context.Context, rows []result.RowMetrics) ([]result.GroupMetrics, error)
	// MetricsByDocQuestion averages row metrics per (document class,
	// question type) pair in lexicographic key order.
	MetricsByDocQuestion(ctx context.Context, rows []result.RowMetrics) ([]result.GroupMetrics, error)
	// GeneralMetrics pools one score triple over every answer pair of the
	// corpus.
	GeneralMetrics(ctx context.Context) (result.GeneralMetrics, error)
	// Evaluate runs every computation, saves the assembled result through
	// the configured result manager, and returns it.
	Evaluate(ctx context.Context) (*result.EvalResult, error)
	// Close closes the evaluator and releases owned resources.
	Close() error
}

// New loads the reference and prediction tables, validates that they are
// structurally compatible, and returns an Evaluator over them.
func New(refPath, predPath string, opt ...Option) (Evaluator, error) {
	opts := newOptions(opt...)
	if opts.resultManager == nil {
		return nil, errors.New("result manager is nil")
	}
	ref, err := dataset.Load(refPath)
	if err != nil {
		return nil, fmt.Errorf("load reference table: %w", err)
	}
	pred, err := dataset.Load(predPath)
	if err != nil {
		return nil, fmt.Errorf("load prediction table: %w", err)
	}
	if err := dataset.Validate(ref, pred); err != nil {
		return nil, fmt.Errorf("validate tables: %w", err)
	}
	log.Debugf("loaded %d row(s) from %s and %s", ref.Len(), refPath, predPath)
	return &evaluator{
		ref:           ref,
		pred:          pred,
		resultManager: opts.resultManager,
		metricOptions: opts.metricOptions,
	}, nil
}

// evaluator is the default implementation of Evaluator. The loaded tables
// are never mutated; every method recomputes from them.
type evaluator struct {
	ref           *dataset.Table
	pred          *dataset.Table
	resultManager result.Manager
	metricOptions []metric.Option
}

// PerRowMetrics computes per row metrics in load order.
func (e *evaluator) PerRowMetrics(ctx context.Context) ([]result.RowMetrics, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	rows := make([]result.RowMetrics, 0, e.ref.Len())
	for i := range e.ref.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		refAnswers, predAnswers, err := e.decodeRow(i)
		if err != nil {
			return nil, err
		}
		scores, err := metric.Compute(ctx, refAnswers, predAnswers, e.metricOptions...)
		if err != nil {
			return nil, fmt.Errorf("score row %d: %w", i, err)
		}
		record := e.ref.Records[i]
		rows = append(rows, result.RowMetrics{
			QuestionID:   record.QuestionID,
			DocClass:     record.DocClass,
			QuestionType: record.QuestionType,
			ImagesNames:  record.ImagesNames,
			Answers:      refAnswers,
			PredAnswers:  predAnswers,
			Scores:       scores,
		})
	}
	return rows, nil
}

// MetricsByDocClass averages row metrics per document class.
func (e *evaluator) MetricsByDocClass(ctx context.Context, rows []result.RowMetrics) ([]result.GroupMetrics, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	groups := groupRows(rows, func(row result.RowMetrics) (string, string) {
		return row.DocClass, ""
	})
	// Stable sort keeps first-seen order among equally sized groups.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Rows > groups[j].Rows
	})
	return groups, nil
}

// MetricsByDocQuestion averages row metrics per (document class, question
// type) pair.
func (e *evaluator) MetricsByDocQuestion(ctx context.Context, rows []result.RowMetrics) ([]result.GroupMetrics, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	groups := groupRows(rows, func(row result.RowMetrics) (string, string) {
		return row.DocClass, row.QuestionType
	})
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].DocClass != groups[j].DocClass {
			return groups[i].DocClass < groups[j].DocClass
		}
		return groups[i].QuestionType < groups[j].QuestionType
	})
	return groups, nil
}

// GeneralMetrics pairs and pads each row's answer lists, flattens them into
// two corpus wide sequences, and scores those once.
func (e *evaluator) GeneralMetrics(ctx context.Context) (result.GeneralMetrics, error) {
	if ctx == nil {
		return result.GeneralMetrics{}, errors.New("context is nil")
	}
	refAll := []string{}
	predAll := []string{}
	for i := range e.ref.Records {
		if err := ctx.Err(); err != nil {
			return result.GeneralMetrics{}, err
		}
		refAnswers, predAnswers, err := e.decodeRow(i)
		if err != nil {
			return result.GeneralMetrics{}, err
		}
		refAnswers, predAnswers = metric.Align(refAnswers, predAnswers)
		refAll = append(refAll, refAnswers...)
		predAll = append(predAll, predAnswers...)
	}
	scores, err := metric.Compute(ctx, refAll, predAll, e.metricOptions...)
	if err != nil {
		return result.GeneralMetrics{}, fmt.Errorf("score corpus: %w", err)
	}
	return result.GeneralMetrics{Scores: scores}, nil
}

// Evaluate runs the full pipeline and saves the assembled result.
func (e *evaluator) Evaluate(ctx context.Context) (*result.EvalResult, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	rows, err := e.PerRowMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute per row metrics: %w", err)
	}
	byClass, err := e.MetricsByDocClass(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("compute doc class metrics: %w", err)
	}
	byQuestion, err := e.MetricsByDocQuestion(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("compute doc question metrics: %w", err)
	}
	general, err := e.GeneralMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute general metrics: %w", err)
	}
	res := &result.EvalResult{
		RefPath:              e.ref.Path,
		PredPath:             e.pred.Path,
		RowMetrics:           rows,
		MetricsByDocClass:    byClass,
		MetricsByDocQuestion: byQuestion,
		General:              &general,
		CreatedAt:            &epochtime.EpochTime{Time: time.Now().UTC()},
	}
	resultID, err := e.resultManager.Save(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("save eval result: %w", err)
	}
	res.ResultID = resultID
	log.Infof("evaluated %d row(s) from %s against %s, saved eval result %s",
		len(rows), e.pred.Path, e.ref.Path, resultID)
	return res, nil
}

// Close closes the evaluator and releases owned resources.
func (e *evaluator) Close() error {
	var overallErr error
	if e.resultManager != nil {
		if err := e.resultManager.Close(); err != nil {
			overallErr = errors.Join(overallErr, fmt.Errorf("close result manager: %w", err))
		}
	}
	return overallErr
}

// decodeRow decodes the reference and predicted answer lists of row i.
func (e *evaluator) decodeRow(i int) ([]string, []string, error) {
	refAnswers, err := e.ref.DecodeAnswers(i)
	if err != nil {
		return nil, nil, fmt.Errorf("decode reference answers: %w", err)
	}
	predAnswers, err := e.pred.DecodeAnswers(i)
	if err != nil {
		return nil, nil, fmt.Errorf("decode predicted answers: %w", err)
	}
	return refAnswers, predAnswers, nil
}

// groupRows accumulates per group score sums in first-seen key order and
// converts them to means.
func groupRows(rows []result.RowMetrics, key func(result.RowMetrics) (string, string)) []result.GroupMetrics {
	groups := []result.GroupMetrics{}
	index := map[string]int{}
	for _, row := range rows {
		docClass, questionType := key(row)
		mapKey := docClass + "\x00" + questionType
		pos, ok := index[mapKey]
		if !ok {
			pos = len(groups)
			index[mapKey] = pos
			groups = append(groups, result.GroupMetrics{
				DocClass:     docClass,
				QuestionType: questionType,
			})
		}
		group := &groups[pos]
		group.Rows++
		group.WER += row.WER
		group.CER += row.CER
		group.BLEU += row.BLEU
	}
	for i := range groups {
		n := float64(groups[i].Rows)
		groups[i].WER /= n
		groups[i].CER /= n
		groups[i].BLEU /= n
	}
	return groups
}
