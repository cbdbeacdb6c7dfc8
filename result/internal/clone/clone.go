package clone

import (
	"encoding/json"
	"errors"

	"github.com/VLLM-VQA-benchmark-pipelines/pipeline-metrics/result"
)

func CloneEvalResult(res *result.EvalResult) (*result.EvalResult, error) {
	if res == nil {
		return nil, errors.New("eval result is nil")
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	var cloned result.EvalResult
	if err := json.Unmarshal(data, &cloned); err != nil {
		return nil, err
	}
	return &cloned, nil
}
