//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package dataset loads and validates the delimited answer tables that the
// evaluator consumes.
//
// A table is a comma or tab delimited text file with a header row. Rows in
// the reference and prediction tables are paired by position, so the two
// tables must carry identical column sequences and row counts; Validate
// enforces exactly that and nothing more.
package dataset

import (
	"slices"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/internal/listlit"
)

// Column names of the input schema.
const (
	// ColumnQuestionID identifies the question instance.
	ColumnQuestionID = "question_id"
	// ColumnDocClass is the document class label.
	ColumnDocClass = "doc_class"
	// ColumnQuestionType is the question category label.
	ColumnQuestionType = "question_type"
	// ColumnAnswers holds the serialized answer list.
	ColumnAnswers = "answers"
	// ColumnAnswerBBox holds bounding box metadata, consumed only to be
	// dropped from derived tables. The misspelling is part of the input
	// schema.
	ColumnAnswerBBox = "answear_bbox"
	// ColumnImagesNames optionally references the source images.
	ColumnImagesNames = "images_names"
)

// requiredColumns must be present in every input table.
var requiredColumns = []string{
	ColumnQuestionID,
	ColumnDocClass,
	ColumnQuestionType,
	ColumnAnswers,
	ColumnAnswerBBox,
}

// Record is one question instance row.
type Record struct {
	// QuestionID identifies the question instance.
	QuestionID string
	// DocClass is the document class label.
	DocClass string
	// QuestionType is the question category label.
	QuestionType string
	// Answers is the serialized answer list. Decode it with
	// Table.DecodeAnswers.
	Answers string
	// AnswerBBox is the bounding box metadata carried by the inputs.
	AnswerBBox string
	// ImagesNames references the source images, empty when the column is
	// absent.
	ImagesNames string
}

// Table is an ordered sequence of records sharing one schema. Tables are
// loaded once and never mutated afterwards.
type Table struct {
	// Path is the file the table was loaded from.
	Path string
	// Columns is the header sequence as it appeared in the file, including
	// any extra columns beyond the required set.
	Columns []string
	// Records holds the data rows in file order.
	Records []Record
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Records) }

// DecodeAnswers decodes the serialized answer list of data row i. It
// returns a *DecodeError when the field is not a valid bracketed list of
// quoted strings.
func (t *Table) DecodeAnswers(i int) ([]string, error) {
	answers, err := listlit.Parse(t.Records[i].Answers)
	if err != nil {
		return nil, &DecodeError{Path: t.Path, Row: i, Column: ColumnAnswers, Err: err}
	}
	return answers, nil
}

// Validate checks that the reference and prediction tables are structurally
// comparable. It returns a *SchemaMismatchError when the column sequences
// differ and a *RowCountMismatchError when the row counts differ.
func Validate(ref, pred *Table) error {
	if !slices.Equal(ref.Columns, pred.Columns) {
		return &SchemaMismatchError{
			RefPath:     ref.Path,
			PredPath:    pred.Path,
			RefColumns:  ref.Columns,
			PredColumns: pred.Columns,
		}
	}
	if len(ref.Records) != len(pred.Records) {
		return &RowCountMismatchError{
			RefPath:  ref.Path,
			PredPath: pred.Path,
			RefRows:  len(ref.Records),
			PredRows: len(pred.Records),
		}
	}
	return nil
}
