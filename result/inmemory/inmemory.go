//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package inmemory provides an in-memory storage implementation for
// evaluation results. It is the default manager wired into the evaluator.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result/internal/clone"
)

// manager implements the result.Manager interface using in-memory storage.
//
// The manager stores and returns deep cloned results so callers cannot
// mutate stored state.
type manager struct {
	mu      sync.RWMutex
	results map[string]*result.EvalResult
	order   []string
}

// New creates a new in-memory evaluation result manager.
func New() result.Manager {
	return &manager{results: make(map[string]*result.EvalResult)}
}

// Save stores a deep copy of the result keyed by its result ID, generating
// an ID when the result carries none.
func (m *manager) Save(ctx context.Context, res *result.EvalResult) (string, error) {
	_ = ctx
	cloned, err := clone.CloneEvalResult(res)
	if err != nil {
		return "", fmt.Errorf("clone eval result: %w", err)
	}
	if cloned.ResultID == "" {
		cloned.ResultID = result.NewResultID()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[cloned.ResultID]; !ok {
		m.order = append(m.order, cloned.ResultID)
	}
	m.results[cloned.ResultID] = cloned
	return cloned.ResultID, nil
}

// Get returns a deep copy of the stored result. A missing result is
// reported with os.ErrNotExist.
func (m *manager) Get(ctx context.Context, resultID string) (*result.EvalResult, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.results[resultID]
	if !ok {
		return nil, fmt.Errorf("%w: eval result %s", os.ErrNotExist, resultID)
	}
	cloned, err := clone.CloneEvalResult(res)
	if err != nil {
		return nil, fmt.Errorf("clone eval result %s: %w", resultID, err)
	}
	return cloned, nil
}

// List returns stored result IDs, most recent first.
func (m *manager) List(ctx context.Context) ([]string, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		ids = append(ids, m.order[i])
	}
	return ids, nil
}

// Close implements result.Manager.
func (m *manager) Close() error { return nil }
