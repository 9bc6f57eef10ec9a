package ml

import (
	"errors"
	"fmt"
)

// DefaultArtifactPath 默认模型文件路径
const DefaultArtifactPath = "heart_model.json"

// Classifier 二分类模型接口，特征顺序与训练时一致，返回类别（通常为0或1）
type Classifier interface {
	Predict(features []float64) (int, error)
}

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrEmptyModel       = errors.New("model has no parameters")
)

// InferenceError 模型推理错误
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

func inferenceErr(model string, format string, args ...any) error {
	return &InferenceError{Model: model, Err: fmt.Errorf(format, args...)}
}

func checkWidth(model string, want int, features []float64) error {
	if len(features) != want {
		return inferenceErr(model, "%s expects %d features, got %d", model, want, len(features))
	}
	return nil
}
