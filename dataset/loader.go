//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Load reads a delimited answer table from path. It trial parses the file
// comma delimited first and falls back to tab delimited; when neither
// delimiter yields a table carrying the required columns it returns a
// *FormatError wrapping both attempt failures.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	table, commaErr := parseTable(path, data, ',')
	if commaErr == nil {
		return table, nil
	}
	table, tabErr := parseTable(path, data, '\t')
	if tabErr == nil {
		return table, nil
	}
	return nil, &FormatError{Path: path, Err: multierror.Append(commaErr, tabErr)}
}

// parseTable parses data under one delimiter. A parse succeeds only when
// the header row carries every required column, so feeding a tab delimited
// file to the comma pass fails here and triggers the fallback.
func parseTable(path string, data []byte, comma rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	// Answer list literals may hold bare quotes in tab delimited files.
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse with delimiter %q: %w", comma, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse with delimiter %q: missing header row", comma)
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("parse with delimiter %q: missing required column %s", comma, name)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{
			QuestionID:   row[index[ColumnQuestionID]],
			DocClass:     row[index[ColumnDocClass]],
			QuestionType: row[index[ColumnQuestionType]],
			Answers:      row[index[ColumnAnswers]],
			AnswerBBox:   row[index[ColumnAnswerBBox]],
		}
		if i, ok := index[ColumnImagesNames]; ok {
			rec.ImagesNames = row[i]
		}
		records = append(records, rec)
	}
	return &Table{Path: path, Columns: header, Records: records}, nil
}
