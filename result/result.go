//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package result defines the derived record types an evaluation run
// produces and the Manager interface for persisting them.
package result

import (
	"context"

	"github.com/google/uuid"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/epochtime"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/metric"
)

// RowMetrics is one per row output record: the reference row's carried
// fields, both decoded answer lists, and the row's scores. The bounding box
// metadata of the inputs is dropped here.
type RowMetrics struct {
	// QuestionID identifies the question instance.
	QuestionID string `json:"question_id"`
	// DocClass is the document class label.
	DocClass string `json:"doc_class"`
	// QuestionType is the question category label.
	QuestionType string `json:"question_type"`
	// ImagesNames references the source images, empty when the inputs carry
	// no such column.
	ImagesNames string `json:"images_names,omitempty"`
	// Answers is the decoded reference answer list.
	Answers []string `json:"answers"`
	// PredAnswers is the decoded predicted answer list.
	PredAnswers []string `json:"pred_answers"`
	// Scores holds this row's metrics.
	metric.Scores
}

// GroupMetrics is one aggregation group: its grouping key, its size, and
// the arithmetic mean of each score over its rows.
type GroupMetrics struct {
	// DocClass is the document class part of the grouping key.
	DocClass string `json:"doc_class"`
	// QuestionType is set only when grouping by document class and
	// question type.
	QuestionType string `json:"question_type,omitempty"`
	// Rows is the number of rows aggregated into this group.
	Rows int `json:"rows"`
	// Scores holds the group means.
	metric.Scores
}

// GeneralMetrics holds scores pooled once over the flattened corpus rather
// than averaged per row.
type GeneralMetrics struct {
	metric.Scores
}

// EvalResult bundles every output of one evaluation run.
type EvalResult struct {
	// ResultID uniquely identifies this result.
	ResultID string `json:"result_id,omitempty"`
	// RefPath is the reference input file.
	RefPath string `json:"ref_path,omitempty"`
	// PredPath is the prediction input file.
	PredPath string `json:"pred_path,omitempty"`
	// RowMetrics holds the per row scores in input row order.
	RowMetrics []RowMetrics `json:"row_metrics,omitempty"`
	// MetricsByDocClass holds group means keyed by document class.
	MetricsByDocClass []GroupMetrics `json:"metrics_by_doc_class,omitempty"`
	// MetricsByDocQuestion holds group means keyed by document class and
	// question type.
	MetricsByDocQuestion []GroupMetrics `json:"metrics_by_doc_question,omitempty"`
	// General holds the corpus pooled scores.
	General *GeneralMetrics `json:"general_metrics,omitempty"`
	// CreatedAt is when this result was created.
	CreatedAt *epochtime.EpochTime `json:"created_at,omitempty"`
}

// Manager defines the interface for persisting evaluation results.
type Manager interface {
	// Save stores an evaluation result and returns its result ID,
	// generating one when the result carries none. The input is not
	// mutated.
	Save(ctx context.Context, res *EvalResult) (string, error)
	// Get retrieves an evaluation result by result ID. A missing result is
	// reported with an error wrapping os.ErrNotExist.
	Get(ctx context.Context, resultID string) (*EvalResult, error)
	// List returns the IDs of all stored evaluation results.
	List(ctx context.Context) ([]string, error)
	// Close releases any resources held by the manager.
	Close() error
}

// NewResultID returns a fresh unique evaluation result identifier.
func NewResultID() string {
	return "result_" + uuid.New().String()
}
