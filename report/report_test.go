//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/internal/listlit"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/metric"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
)

func testRowMetrics() []result.RowMetrics {
	return []result.RowMetrics{
		{
			QuestionID:   "q1",
			DocClass:     "invoice",
			QuestionType: "total_amount",
			ImagesNames:  "invoice_1.png",
			Answers:      []string{"42.00"},
			PredAnswers:  []string{"42.00"},
			Scores:       metric.Scores{WER: 0, CER: 0, BLEU: 100},
		},
		{
			QuestionID:   "q2",
			DocClass:     "receipt",
			QuestionType: "date",
			Answers:      []string{"May 1, 2024", "2024-05-01"},
			PredAnswers:  []string{"May 2, 2024"},
			Scores:       metric.Scores{WER: 1.0 / 3.0, CER: 0.125, BLEU: 12.5},
		},
	}
}

func parseDelimited(t *testing.T, data string, comma rune) [][]string {
	t.Helper()
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = comma
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteRowMetrics_Comma(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRowMetrics(&buf, testRowMetrics())
	require.NoError(t, err)

	records := parseDelimited(t, buf.String(), ',')
	require.Len(t, records, 3)
	assert.Equal(t, rowMetricsHeader, records[0])

	assert.Equal(t, "q1", records[1][0])
	assert.Equal(t, "invoice", records[1][1])
	assert.Equal(t, "total_amount", records[1][2])
	assert.Equal(t, "invoice_1.png", records[1][3])
	assert.Equal(t, "0", records[1][6])
	assert.Equal(t, "0", records[1][7])
	assert.Equal(t, "100", records[1][8])

	answers, err := listlit.Parse(records[2][4])
	require.NoError(t, err)
	assert.Equal(t, []string{"May 1, 2024", "2024-05-01"}, answers)
	predAnswers, err := listlit.Parse(records[2][5])
	require.NoError(t, err)
	assert.Equal(t, []string{"May 2, 2024"}, predAnswers)

	wer, err := strconv.ParseFloat(records[2][6], 64)
	require.NoError(t, err)
	assert.Equal(t, 1.0/3.0, wer)
	assert.Equal(t, "0.125", records[2][7])
	assert.Equal(t, "12.5", records[2][8])
}

func TestWriteRowMetrics_TabMatchesComma(t *testing.T) {
	rows := testRowMetrics()

	var commaBuf bytes.Buffer
	require.NoError(t, WriteRowMetrics(&commaBuf, rows))
	var tabBuf bytes.Buffer
	require.NoError(t, WriteRowMetrics(&tabBuf, rows, WithComma('\t')))

	commaRecords := parseDelimited(t, commaBuf.String(), ',')
	tabRecords := parseDelimited(t, tabBuf.String(), '\t')
	assert.Equal(t, commaRecords, tabRecords)
}

func TestWriteRowMetrics_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRowMetrics(&buf, nil))

	records := parseDelimited(t, buf.String(), ',')
	require.Len(t, records, 1)
	assert.Equal(t, rowMetricsHeader, records[0])
}

func TestWriteGroupMetrics(t *testing.T) {
	groups := []result.GroupMetrics{
		{DocClass: "invoice", Rows: 2, Scores: metric.Scores{WER: 0.25, CER: 0.1, BLEU: 80}},
		{DocClass: "receipt", Rows: 1, Scores: metric.Scores{WER: 1, CER: 0.5, BLEU: 0}},
		{DocClass: "invoice", QuestionType: "total_amount", Rows: 2, Scores: metric.Scores{WER: 0.25, CER: 0.1, BLEU: 80}},
	}

	var buf bytes.Buffer
	err := WriteGroupMetrics(&buf, groups, WithComma('\t'))
	require.NoError(t, err)

	records := parseDelimited(t, buf.String(), '\t')
	require.Len(t, records, 4)
	assert.Equal(t, groupMetricsHeader, records[0])
	assert.Equal(t, []string{"invoice", "", "2", "0.25", "0.1", "80"}, records[1])
	assert.Equal(t, []string{"receipt", "", "1", "1", "0.5", "0"}, records[2])
	assert.Equal(t, []string{"invoice", "total_amount", "2", "0.25", "0.1", "80"}, records[3])
}

func TestWriteGeneralMetrics(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGeneralMetrics(&buf, &result.GeneralMetrics{
		Scores: metric.Scores{WER: 0.25, CER: 0.125, BLEU: 42.5},
	})
	require.NoError(t, err)

	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 3)
	assert.Equal(t, 0.25, decoded["wer_error"])
	assert.Equal(t, 0.125, decoded["cer_error"])
	assert.Equal(t, 42.5, decoded["bleu_score"])
}

func TestWriteGeneralMetrics_Nil(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGeneralMetrics(&buf, nil)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	res := &result.EvalResult{
		ResultID:   "result_x",
		RefPath:    "ref.csv",
		PredPath:   "pred.csv",
		RowMetrics: make([]result.RowMetrics, 3),
		MetricsByDocClass: []result.GroupMetrics{
			{DocClass: "invoice", Rows: 2, Scores: metric.Scores{WER: 0.25, CER: 0.1, BLEU: 80}},
			{DocClass: "receipt", Rows: 1, Scores: metric.Scores{WER: 1, CER: 0.5, BLEU: 0}},
		},
		MetricsByDocQuestion: []result.GroupMetrics{
			{DocClass: "invoice", QuestionType: "total_amount", Rows: 2, Scores: metric.Scores{WER: 0.25, CER: 0.1, BLEU: 80}},
		},
		General: &result.GeneralMetrics{Scores: metric.Scores{WER: 0.5, CER: 0.2, BLEU: 40}},
	}

	digest := Summary(res)
	assert.Contains(t, digest, "result_x")
	assert.Contains(t, digest, "ref.csv")
	assert.Contains(t, digest, "pred.csv")
	assert.Contains(t, digest, "general")
	assert.Contains(t, digest, "invoice/total_amount")
	assert.Contains(t, digest, "receipt")
	assert.Contains(t, digest, "0.2500")

	lines := strings.Split(strings.TrimRight(digest, "\n"), "\n")
	assert.Len(t, lines, 10)
}

func TestSummary_Nil(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
}

func TestWithComma(t *testing.T) {
	assert.Equal(t, ',', newOptions().comma)
	assert.Equal(t, '\t', newOptions(WithComma('\t')).comma)
	assert.Panics(t, func() { newOptions(WithComma(';')) })
}
