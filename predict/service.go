// Package predict 提供预测服务
package predict

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"cardiopredict/heart"
	"cardiopredict/ml"
)

// ErrNoModel 未提供模型
var ErrNoModel = errors.New("predict: model is required")

// Error 预测错误
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "Prediction error: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Service struct {
	model  ml.Classifier
	cache  *lru.Cache[heart.Vector, int]
	logger *zap.Logger
}

type Option func(*Service) error

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithCache 按特征向量缓存成功的预测结果，size为0时不缓存
func WithCache(size int) Option {
	return func(s *Service) error {
		if size <= 0 {
			s.cache = nil
			return nil
		}
		c, err := lru.New[heart.Vector, int](size)
		if err != nil {
			return fmt.Errorf("create prediction cache: %w", err)
		}
		s.cache = c
		return nil
	}
}

func NewService(model ml.Classifier, opts ...Option) (*Service, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	s := &Service{model: model, logger: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ModelLoaded 模型是否已加载
func (s *Service) ModelLoaded() bool {
	return s != nil && s.model != nil
}

// Predict 调用一次模型预测，失败（包括模型内panic）返回*Error
func (s *Service) Predict(ctx context.Context, obs heart.Observation) (heart.Label, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Err: err}
	}

	vec := obs.Vector()
	if s.cache != nil {
		if class, ok := s.cache.Get(vec); ok {
			return heart.LabelFor(class), nil
		}
	}

	class, err := s.classify(vec)
	if err != nil {
		s.logger.Warn("prediction failed", zap.Error(err))
		return "", &Error{Err: err}
	}
	if s.cache != nil {
		s.cache.Add(vec, class)
	}

	label := heart.LabelFor(class)
	s.logger.Debug("prediction", zap.Int("class", class), zap.Stringer("label", label))
	return label, nil
}

func (s *Service) classify(vec heart.Vector) (class int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()
	return s.model.Predict(vec.Slice())
}
