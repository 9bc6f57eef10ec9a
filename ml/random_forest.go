package ml

import "fmt"

const randomForestType = "random_forest"

// RandomForest 随机森林，多数投票，票数相同取较小类别
type RandomForest struct {
	trees     []*DecisionTree
	nFeatures int
}

func newRandomForest(trees [][]TreeNode, nFeatures int) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyModel
	}
	rf := &RandomForest{trees: make([]*DecisionTree, 0, len(trees)), nFeatures: nFeatures}
	for i, nodes := range trees {
		dt, err := newDecisionTree(nodes, nFeatures)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		rf.trees = append(rf.trees, dt)
	}
	return rf, nil
}

func (rf *RandomForest) Predict(features []float64) (int, error) {
	if rf.nFeatures > 0 {
		if err := checkWidth(randomForestType, rf.nFeatures, features); err != nil {
			return 0, err
		}
	}
	votes := make(map[int]int)
	for i, tree := range rf.trees {
		label, err := tree.Predict(features)
		if err != nil {
			return 0, inferenceErr(randomForestType, "tree %d: %w", i, err)
		}
		votes[label]++
	}

	best, bestCount := 0, -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best, nil
}
