//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package report serializes evaluation results to delimited tables, JSON,
// and an aligned text digest.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/dataset"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/internal/listlit"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
)

// rowMetricsHeader is the column order for per row metrics tables. Identity
// columns keep their input table names.
var rowMetricsHeader = []string{
	dataset.ColumnQuestionID,
	dataset.ColumnDocClass,
	dataset.ColumnQuestionType,
	dataset.ColumnImagesNames,
	dataset.ColumnAnswers,
	"pred_answers",
	"wer_error",
	"cer_error",
	"bleu_score",
}

// groupMetricsHeader is the column order for group metrics tables. The
// question_type column is present for both group kinds and left empty for
// document class groups.
var groupMetricsHeader = []string{
	dataset.ColumnDocClass,
	dataset.ColumnQuestionType,
	"rows",
	"wer_error",
	"cer_error",
	"bleu_score",
}

// WriteRowMetrics writes per row metrics as a delimited table. Answer lists
// are rendered as bracketed literals that the answer decoder round-trips.
func WriteRowMetrics(w io.Writer, rows []result.RowMetrics, opt ...Option) error {
	opts := newOptions(opt...)
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma
	if err := cw.Write(rowMetricsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		record := []string{
			row.QuestionID,
			row.DocClass,
			row.QuestionType,
			row.ImagesNames,
			listlit.Format(row.Answers),
			listlit.Format(row.PredAnswers),
			formatFloat(row.WER),
			formatFloat(row.CER),
			formatFloat(row.BLEU),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGroupMetrics writes group metrics as a delimited table, preserving
// the group order of the input slice.
func WriteGroupMetrics(w io.Writer, groups []result.GroupMetrics, opt ...Option) error {
	opts := newOptions(opt...)
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma
	if err := cw.Write(groupMetricsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, group := range groups {
		record := []string{
			group.DocClass,
			group.QuestionType,
			strconv.Itoa(group.Rows),
			formatFloat(group.WER),
			formatFloat(group.CER),
			formatFloat(group.BLEU),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write group %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGeneralMetrics writes corpus level metrics as an indented JSON object
// keyed by metric name.
func WriteGeneralMetrics(w io.Writer, general *result.GeneralMetrics) error {
	if general == nil {
		return errors.New("general metrics is nil")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(general); err != nil {
		return fmt.Errorf("encode general metrics: %w", err)
	}
	return nil
}

// Summary renders an aligned text digest of an evaluation result.
func Summary(res *result.EvalResult) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "result\t%s\n", res.ResultID)
	fmt.Fprintf(tw, "reference\t%s\n", res.RefPath)
	fmt.Fprintf(tw, "prediction\t%s\n", res.PredPath)
	fmt.Fprintf(tw, "rows\t%d\n", len(res.RowMetrics))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, strings.Join([]string{"GROUP", "ROWS", "WER", "CER", "BLEU"}, "\t"))
	if res.General != nil {
		fmt.Fprintln(tw, strings.Join([]string{
			"general",
			strconv.Itoa(len(res.RowMetrics)),
			fmt.Sprintf("%.4f", res.General.WER),
			fmt.Sprintf("%.4f", res.General.CER),
			fmt.Sprintf("%.4f", res.General.BLEU),
		}, "\t"))
	}
	for _, group := range res.MetricsByDocClass {
		fmt.Fprintln(tw, strings.Join(groupRow(group), "\t"))
	}
	for _, group := range res.MetricsByDocQuestion {
		fmt.Fprintln(tw, strings.Join(groupRow(group), "\t"))
	}
	_ = tw.Flush()
	return sb.String()
}

// groupRow renders one group metrics line for the summary table.
func groupRow(group result.GroupMetrics) []string {
	name := group.DocClass
	if group.QuestionType != "" {
		name = group.DocClass + "/" + group.QuestionType
	}
	return []string{
		name,
		strconv.Itoa(group.Rows),
		fmt.Sprintf("%.4f", group.WER),
		fmt.Sprintf("%.4f", group.CER),
		fmt.Sprintf("%.4f", group.BLEU),
	}
}

// formatFloat renders v in full precision without exponent notation.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
