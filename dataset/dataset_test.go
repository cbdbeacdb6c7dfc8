//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTable builds an in-memory table for validation tests.
func testTable(path string, columns []string, rows int) *Table {
	records := make([]Record, rows)
	for i := range records {
		records[i] = Record{QuestionID: "q", Answers: "['a']"}
	}
	return &Table{Path: path, Columns: columns, Records: records}
}

// TestValidate_Match verifies structurally identical tables pass.
func TestValidate_Match(t *testing.T) {
	columns := []string{"question_id", "doc_class", "question_type", "answers", "answear_bbox"}
	err := Validate(testTable("ref.csv", columns, 3), testTable("pred.csv", columns, 3))
	assert.NoError(t, err)
}

// TestValidate_SchemaMismatch verifies diverging column sequences are rejected.
func TestValidate_SchemaMismatch(t *testing.T) {
	refColumns := []string{"question_id", "doc_class", "question_type", "answers", "answear_bbox"}
	predColumns := []string{"question_id", "doc_class", "question_type", "answers", "answear_bbox", "images_names"}

	err := Validate(testTable("ref.csv", refColumns, 1), testTable("pred.csv", predColumns, 1))
	require.Error(t, err)
	var schemaErr *SchemaMismatchError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, refColumns, schemaErr.RefColumns)
	assert.Equal(t, predColumns, schemaErr.PredColumns)
}

// TestValidate_SchemaOrderSensitive verifies the comparison is order sensitive.
func TestValidate_SchemaOrderSensitive(t *testing.T) {
	refColumns := []string{"question_id", "doc_class", "answers"}
	predColumns := []string{"doc_class", "question_id", "answers"}

	err := Validate(testTable("ref.csv", refColumns, 1), testTable("pred.csv", predColumns, 1))
	var schemaErr *SchemaMismatchError
	assert.ErrorAs(t, err, &schemaErr)
}

// TestValidate_RowCountMismatch verifies diverging row counts are rejected.
func TestValidate_RowCountMismatch(t *testing.T) {
	columns := []string{"question_id", "doc_class", "question_type", "answers", "answear_bbox"}

	err := Validate(testTable("ref.csv", columns, 2), testTable("pred.csv", columns, 3))
	require.Error(t, err)
	var rowErr *RowCountMismatchError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.RefRows)
	assert.Equal(t, 3, rowErr.PredRows)
}

// TestDecodeAnswers verifies answer list decoding and its error reporting.
func TestDecodeAnswers(t *testing.T) {
	table := &Table{
		Path:    "ref.csv",
		Columns: []string{"answers"},
		Records: []Record{
			{Answers: "['cat', 'dog']"},
			{Answers: `["quoted, with comma"]`},
			{Answers: "[]"},
			{Answers: "not a list"},
		},
	}

	answers, err := table.DecodeAnswers(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, answers)

	answers, err = table.DecodeAnswers(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"quoted, with comma"}, answers)

	answers, err = table.DecodeAnswers(2)
	require.NoError(t, err)
	assert.Empty(t, answers)
	assert.NotNil(t, answers)

	_, err = table.DecodeAnswers(3)
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "ref.csv", decodeErr.Path)
	assert.Equal(t, 3, decodeErr.Row)
	assert.Equal(t, ColumnAnswers, decodeErr.Column)
	assert.Error(t, decodeErr.Err)
}
