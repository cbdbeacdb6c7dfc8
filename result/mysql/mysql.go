//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/epochtime"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
)

var _ result.Manager = (*manager)(nil)

type manager struct {
	opts  options
	db    *sql.DB
	table string
}

// New creates a MySQL backed eval result manager.
func New(opt ...Option) (result.Manager, error) {
	opts := newOptions(opt...)
	db := opts.db
	if db == nil {
		if opts.dsn == "" {
			return nil, errors.New("mysql dsn is empty")
		}
		var err error
		db, err = sql.Open("mysql", opts.dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql connection: %w", err)
		}
	}
	m := &manager{
		opts:  *opts,
		db:    db,
		table: opts.tablePrefix + tableNameEvalResults,
	}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if err := m.ensureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database failed: %w", err)
		}
	}
	return m, nil
}

// Close implements result.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Save upserts an evaluation result into MySQL, generating a result ID when
// the result carries none.
func (m *manager) Save(ctx context.Context, res *result.EvalResult) (string, error) {
	if res == nil {
		return "", errors.New("eval result is nil")
	}
	resultID := res.ResultID
	if resultID == "" {
		resultID = result.NewResultID()
	}
	rowMetrics := res.RowMetrics
	if rowMetrics == nil {
		rowMetrics = []result.RowMetrics{}
	}
	rowPayload, err := json.Marshal(rowMetrics)
	if err != nil {
		return "", fmt.Errorf("marshal row metrics: %w", err)
	}
	byClassPayload, err := json.Marshal(groupsOrEmpty(res.MetricsByDocClass))
	if err != nil {
		return "", fmt.Errorf("marshal doc class metrics: %w", err)
	}
	byQuestionPayload, err := json.Marshal(groupsOrEmpty(res.MetricsByDocQuestion))
	if err != nil {
		return "", fmt.Errorf("marshal doc question metrics: %w", err)
	}
	var generalPayload any
	if res.General != nil {
		generalBytes, err := json.Marshal(res.General)
		if err != nil {
			return "", fmt.Errorf("marshal general metrics: %w", err)
		}
		generalPayload = generalBytes
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (eval_result_id, ref_path, pred_path, row_metrics, metrics_by_doc_class, metrics_by_doc_question, general_metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   ref_path = VALUES(ref_path),
		   pred_path = VALUES(pred_path),
		   row_metrics = VALUES(row_metrics),
		   metrics_by_doc_class = VALUES(metrics_by_doc_class),
		   metrics_by_doc_question = VALUES(metrics_by_doc_question),
		   general_metrics = VALUES(general_metrics),
		   updated_at = CURRENT_TIMESTAMP(6)`,
		m.table,
	)
	if _, err := m.db.ExecContext(ctx, query,
		resultID, res.RefPath, res.PredPath,
		rowPayload, byClassPayload, byQuestionPayload, generalPayload); err != nil {
		return "", fmt.Errorf("store eval result %s: %w", resultID, err)
	}
	return resultID, nil
}

// Get loads an evaluation result from MySQL.
func (m *manager) Get(ctx context.Context, resultID string) (*result.EvalResult, error) {
	if resultID == "" {
		return nil, errors.New("result id is empty")
	}
	var (
		refPath           string
		predPath          string
		rowPayload        []byte
		byClassPayload    []byte
		byQuestionPayload []byte
		general           sql.NullString
		createdAt         time.Time
	)
	query := fmt.Sprintf(
		"SELECT ref_path, pred_path, row_metrics, metrics_by_doc_class, metrics_by_doc_question, general_metrics, created_at FROM %s WHERE eval_result_id = ?",
		m.table,
	)
	err := m.db.QueryRowContext(ctx, query, resultID).Scan(
		&refPath, &predPath, &rowPayload, &byClassPayload, &byQuestionPayload, &general, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("eval result %s not found: %w", resultID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("load eval result %s: %w", resultID, err)
	}
	var rows []result.RowMetrics
	if err := json.Unmarshal(rowPayload, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal row metrics %s: %w", resultID, err)
	}
	if rows == nil {
		rows = []result.RowMetrics{}
	}
	byClass, err := unmarshalGroups(byClassPayload)
	if err != nil {
		return nil, fmt.Errorf("unmarshal doc class metrics %s: %w", resultID, err)
	}
	byQuestion, err := unmarshalGroups(byQuestionPayload)
	if err != nil {
		return nil, fmt.Errorf("unmarshal doc question metrics %s: %w", resultID, err)
	}
	var generalObj *result.GeneralMetrics
	if general.Valid && general.String != "" {
		var g result.GeneralMetrics
		if err := json.Unmarshal([]byte(general.String), &g); err != nil {
			return nil, fmt.Errorf("unmarshal general metrics %s: %w", resultID, err)
		}
		generalObj = &g
	}
	return &result.EvalResult{
		ResultID:             resultID,
		RefPath:              refPath,
		PredPath:             predPath,
		RowMetrics:           rows,
		MetricsByDocClass:    byClass,
		MetricsByDocQuestion: byQuestion,
		General:              generalObj,
		CreatedAt:            &epochtime.EpochTime{Time: createdAt},
	}, nil
}

// List lists evaluation result IDs from MySQL, most recent first.
func (m *manager) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT eval_result_id FROM %s ORDER BY created_at DESC", m.table)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list eval results: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan eval result id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list eval results: %w", err)
	}
	return ids, nil
}

// groupsOrEmpty normalizes nil group slices so the JSON column is never null.
func groupsOrEmpty(groups []result.GroupMetrics) []result.GroupMetrics {
	if groups == nil {
		return []result.GroupMetrics{}
	}
	return groups
}

// unmarshalGroups decodes a group metrics payload into a non-nil slice.
func unmarshalGroups(payload []byte) ([]result.GroupMetrics, error) {
	var groups []result.GroupMetrics
	if err := json.Unmarshal(payload, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []result.GroupMetrics{}
	}
	return groups, nil
}
