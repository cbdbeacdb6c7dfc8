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
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// tableNameEvalResults is the base table name before the configured prefix
// is applied.
const tableNameEvalResults = "eval_results"

// mysqlErrDuplicateKeyName is server error 1061, raised when an index with
// the same name already exists.
const mysqlErrDuplicateKeyName = 1061

const (
	sqlCreateEvalResultsTable = `
		CREATE TABLE IF NOT EXISTS {{TABLE_NAME}} (
			id BIGINT NOT NULL AUTO_INCREMENT,
			eval_result_id VARCHAR(255) NOT NULL,
			ref_path VARCHAR(1024) NOT NULL DEFAULT '',
			pred_path VARCHAR(1024) NOT NULL DEFAULT '',
			row_metrics JSON NOT NULL,
			metrics_by_doc_class JSON NOT NULL,
			metrics_by_doc_question JSON NOT NULL,
			general_metrics JSON DEFAULT NULL,
			created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	sqlCreateEvalResultsUniqueIndex = `
		CREATE UNIQUE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(eval_result_id)`

	sqlCreateEvalResultsCreatedIndex = `
		CREATE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(created_at)`
)

// ensureSchema creates the results table and its indexes if they do not
// exist.
func (m *manager) ensureSchema(ctx context.Context) error {
	query := strings.ReplaceAll(sqlCreateEvalResultsTable, "{{TABLE_NAME}}", m.table)
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s failed: %w", m.table, err)
	}
	indexes := []struct {
		name     string
		template string
	}{
		{name: "uniq_eval_results_result_id", template: sqlCreateEvalResultsUniqueIndex},
		{name: "idx_eval_results_created", template: sqlCreateEvalResultsCreatedIndex},
	}
	for _, idx := range indexes {
		query := strings.ReplaceAll(idx.template, "{{TABLE_NAME}}", m.table)
		query = strings.ReplaceAll(query, "{{INDEX_NAME}}", idx.name)
		if _, err := m.db.ExecContext(ctx, query); err != nil {
			if isDuplicateKeyName(err) {
				continue
			}
			return fmt.Errorf("create index %s on table %s failed: %w", idx.name, m.table, err)
		}
	}
	return nil
}

// isDuplicateKeyName reports whether the error is the MySQL duplicate key
// name error.
func isDuplicateKeyName(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrDuplicateKeyName
}
