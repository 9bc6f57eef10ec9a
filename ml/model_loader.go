package ml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"cardiopredict/heart"
)

type artifact struct {
	ModelType    string       `json:"model_type"`
	NFeatures    *int         `json:"n_features"`
	Nodes        []TreeNode   `json:"nodes"`
	Trees        [][]TreeNode `json:"trees"`
	Coefficients []float64    `json:"coefficients"`
	Intercept    float64      `json:"intercept"`
	Threshold    *float64     `json:"threshold"`
}

// LoadModel 加载模型文件：带model_type的JSON，或决策树节点数组
func LoadModel(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	model, err := parseArtifact(payload)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return model, nil
}

func parseArtifact(payload []byte) (Classifier, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) > 0 && payload[0] == '[' {
		var nodes []TreeNode
		if err := json.Unmarshal(payload, &nodes); err != nil {
			return nil, err
		}
		return newDecisionTree(nodes, heart.NumFeatures)
	}

	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, err
	}
	if a.NFeatures != nil && *a.NFeatures != heart.NumFeatures {
		return nil, fmt.Errorf("model expects %d features, observations have %d", *a.NFeatures, heart.NumFeatures)
	}

	switch a.ModelType {
	case decisionTreeType:
		return newDecisionTree(a.Nodes, heart.NumFeatures)
	case randomForestType:
		return newRandomForest(a.Trees, heart.NumFeatures)
	case logisticRegressionType:
		if len(a.Coefficients) > 0 && len(a.Coefficients) != heart.NumFeatures {
			return nil, fmt.Errorf("model has %d coefficients, observations have %d", len(a.Coefficients), heart.NumFeatures)
		}
		return newLogisticRegression(a.Coefficients, a.Intercept, a.Threshold)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, a.ModelType)
	}
}
