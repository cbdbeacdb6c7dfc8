//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package local provides a local file storage implementation for evaluation
// results. Each result is one pretty printed JSON file under the base
// directory.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
)

// resultFileSuffix names the files this manager owns inside the base dir.
const resultFileSuffix = ".eval_result.json"

// manager implements the result.Manager interface using local file storage.
type manager struct {
	baseDir string
	mu      sync.Mutex
}

// NewManager creates a new local file evaluation result manager.
// Use functional options (see result/option.go) to override the default
// directory.
func NewManager(opt ...result.Option) result.Manager {
	opts := result.NewOptions(opt...)
	return &manager{baseDir: opts.BaseDir}
}

// Save writes the result to its own file, generating a result ID when the
// result carries none. The write is atomic: a temp file is renamed over the
// target.
func (m *manager) Save(ctx context.Context, res *result.EvalResult) (string, error) {
	_ = ctx
	if res == nil {
		return "", errors.New("eval result is nil")
	}
	resultID := res.ResultID
	if resultID == "" {
		resultID = result.NewResultID()
		stamped := *res
		stamped.ResultID = resultID
		res = &stamped
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", err
	}
	path := m.resultPath(resultID)
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return resultID, nil
}

// Get retrieves an evaluation result by result ID from its file.
func (m *manager) Get(ctx context.Context, resultID string) (*result.EvalResult, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(resultID)
}

// List returns the IDs of all results stored under the base directory.
func (m *manager) List(ctx context.Context) ([]string, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, resultFileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, resultFileSuffix))
	}
	return ids, nil
}

// Close implements result.Manager.
func (m *manager) Close() error { return nil }

func (m *manager) resultPath(resultID string) string {
	return filepath.Join(m.baseDir, resultID+resultFileSuffix)
}

func (m *manager) load(resultID string) (*result.EvalResult, error) {
	f, err := os.Open(m.resultPath(resultID))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var res result.EvalResult
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
