//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package mysql provides a MySQL-backed result.Manager implementation.
package mysql

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"
)

const defaultInitTimeout = 30 * time.Second

// tablePrefixRE constrains prefixes to identifier safe characters.
var tablePrefixRE = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// options holds configuration for the MySQL eval result manager.
type options struct {
	// dsn is the MySQL DSN connection string.
	dsn string
	// db is an existing connection pool used instead of opening the DSN.
	db *sql.DB
	// skipDBInit indicates whether database schema initialization is skipped.
	skipDBInit bool
	// tablePrefix is the prefix applied to the results table name.
	tablePrefix string
	// initTimeout is the timeout used for database schema initialization.
	initTimeout time.Duration
}

// Option configures options.
type Option func(*options)

func newOptions(opt ...Option) *options {
	o := &options{
		initTimeout: defaultInitTimeout,
	}
	for _, op := range opt {
		op(o)
	}
	return o
}

// WithDSN sets the MySQL DSN connection string. The DSN should enable
// parseTime so created_at scans into time.Time.
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}

// WithDB uses an existing connection pool. It takes precedence over the DSN
// and the manager assumes ownership, closing it on Close.
func WithDB(db *sql.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// WithSkipDBInit skips database initialization (table and index creation).
func WithSkipDBInit(skip bool) Option {
	return func(o *options) {
		o.skipDBInit = skip
	}
}

// WithTablePrefix sets a prefix for the results table name. The prefix must
// contain only letters, digits, and underscores.
func WithTablePrefix(prefix string) Option {
	return func(o *options) {
		if !tablePrefixRE.MatchString(prefix) {
			panic(fmt.Sprintf("invalid table prefix %q", prefix))
		}
		o.tablePrefix = prefix
	}
}

// WithInitTimeout sets the timeout for schema initialization.
func WithInitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout <= 0 {
			return
		}
		o.initTimeout = timeout
	}
}
