//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package dataset

import "fmt"

// FormatError reports a file that parses under neither the comma nor the
// tab delimiter. Err accumulates both trial parse failures.
type FormatError struct {
	// Path is the offending input file.
	Path string
	// Err holds the failure of each delimiter attempt.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("file %s is neither comma nor tab delimited: %v", e.Path, e.Err)
}

// Unwrap exposes the accumulated parse failures.
func (e *FormatError) Unwrap() error { return e.Err }

// SchemaMismatchError reports reference and prediction tables whose column
// sequences differ.
type SchemaMismatchError struct {
	// RefPath and PredPath identify the two inputs.
	RefPath  string
	PredPath string
	// RefColumns and PredColumns are the diverging header sequences.
	RefColumns  []string
	PredColumns []string
}

// Error implements the error interface.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("column mismatch: %s has %v, %s has %v",
		e.RefPath, e.RefColumns, e.PredPath, e.PredColumns)
}

// RowCountMismatchError reports reference and prediction tables whose row
// counts differ.
type RowCountMismatchError struct {
	// RefPath and PredPath identify the two inputs.
	RefPath  string
	PredPath string
	// RefRows and PredRows are the diverging data row counts.
	RefRows  int
	PredRows int
}

// Error implements the error interface.
func (e *RowCountMismatchError) Error() string {
	return fmt.Sprintf("row count mismatch: %s has %d rows, %s has %d rows",
		e.RefPath, e.RefRows, e.PredPath, e.PredRows)
}

// DecodeError reports an answers field that is not a valid serialized
// string list.
type DecodeError struct {
	// Path is the input file holding the field.
	Path string
	// Row is the zero based data row index.
	Row int
	// Column is the offending column name.
	Column string
	// Err is the underlying scanner failure.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s row %d column %s: %v", e.Path, e.Row, e.Column, e.Err)
}

// Unwrap exposes the underlying scanner failure.
func (e *DecodeError) Unwrap() error { return e.Err }
