package ml

import "fmt"

const decisionTreeType = "decision_tree"

// DecisionTree 决策树模型，节点以数组存储，0号为根节点
type DecisionTree struct {
	nodes     []TreeNode
	nFeatures int
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

func newDecisionTree(nodes []TreeNode, nFeatures int) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyModel
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || (nFeatures > 0 && node.FeatureIdx >= nFeatures) {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
	}
	return &DecisionTree{nodes: nodes, nFeatures: nFeatures}, nil
}

// Predict 预测：小于等于阈值走左子树，否则走右子树
func (dt *DecisionTree) Predict(features []float64) (int, error) {
	if len(dt.nodes) == 0 {
		return 0, inferenceErr(decisionTreeType, "model not loaded")
	}
	if dt.nFeatures > 0 {
		if err := checkWidth(decisionTreeType, dt.nFeatures, features); err != nil {
			return 0, err
		}
	}
	idx := 0
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, inferenceErr(decisionTreeType, "feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, inferenceErr(decisionTreeType, "invalid tree state")
		}
	}
	return 0, inferenceErr(decisionTreeType, "invalid tree state: cycle detected")
}
