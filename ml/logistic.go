package ml

import "math"

const logisticRegressionType = "logistic_regression"

// LogisticRegression 逻辑回归，sigmoid(w·x + b)达到阈值时预测为1
type LogisticRegression struct {
	coefficients []float64
	intercept    float64
	threshold    float64
}

func newLogisticRegression(coefficients []float64, intercept float64, threshold *float64) (*LogisticRegression, error) {
	if len(coefficients) == 0 {
		return nil, ErrEmptyModel
	}
	lr := &LogisticRegression{
		coefficients: coefficients,
		intercept:    intercept,
		threshold:    0.5,
	}
	if threshold != nil {
		lr.threshold = *threshold
	}
	return lr, nil
}

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	if err := checkWidth(logisticRegressionType, len(lr.coefficients), features); err != nil {
		return 0, err
	}
	z := lr.intercept
	for i, w := range lr.coefficients {
		z += w * features[i]
	}
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, inferenceErr(logisticRegressionType, "non-finite activation")
	}
	if sigmoid(z) >= lr.threshold {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
