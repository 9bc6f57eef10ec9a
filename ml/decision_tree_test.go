package ml

import (
	"errors"
	"path/filepath"
	"testing"
)

func sample(oldpeak, chol, ca float64) []float64 {
	return []float64{63, 1, 3, 145, chol, 1, 0, 150, 0, oldpeak, 0, ca, 1}
}

func TestDecisionTreePredict(t *testing.T) {
	model, err := LoadModel(filepath.Join("testdata", "decision_tree.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		features []float64
		want     int
	}{
		{sample(2.3, 233, 0), 1},
		{sample(2.3, 233, 2), 0},
		{sample(1.0, 233, 0), 0},
		{sample(1.5, 233, 0), 0},
	}
	for _, tt := range tests {
		label, err := model.Predict(tt.features)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if label != tt.want {
			t.Errorf("Predict(%v) = %d, want %d", tt.features, label, tt.want)
		}
	}
}

func TestDecisionTreeRejectsWrongWidth(t *testing.T) {
	model, err := LoadModel(filepath.Join("testdata", "decision_tree.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = model.Predict([]float64{1, 2})
	var ierr *InferenceError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *InferenceError, got %v", err)
	}
	if ierr.Model != decisionTreeType {
		t.Fatalf("unexpected model %q", ierr.Model)
	}
}

func TestDecisionTreeInvalidState(t *testing.T) {
	tests := map[string][]TreeNode{
		"child out of range": {
			{FeatureIdx: 0, Threshold: 1, LeftChild: 5, RightChild: 5},
		},
		"cycle": {
			{FeatureIdx: 0, Threshold: 1, LeftChild: 0, RightChild: 0},
		},
	}
	for name, nodes := range tests {
		t.Run(name, func(t *testing.T) {
			dt, err := newDecisionTree(nodes, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err = dt.Predict([]float64{0})
			var ierr *InferenceError
			if !errors.As(err, &ierr) {
				t.Fatalf("expected *InferenceError, got %v", err)
			}
		})
	}
}

func TestDecisionTreeBareArray(t *testing.T) {
	model, err := LoadModel(filepath.Join("testdata", "decision_tree_bare.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*DecisionTree); !ok {
		t.Fatalf("expected *DecisionTree, got %T", model)
	}
	tests := []struct {
		oldpeak float64
		want    int
	}{
		{0.5, 0},
		{1.5, 0},
		{2.3, 1},
	}
	for _, tt := range tests {
		got, err := model.Predict(sample(tt.oldpeak, 233, 0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Fatalf("oldpeak %v: got %d, want %d", tt.oldpeak, got, tt.want)
		}
	}
}

func TestNewDecisionTreeRejectsBadFeatureIndex(t *testing.T) {
	_, err := newDecisionTree([]TreeNode{
		{FeatureIdx: 13, Threshold: 1, LeftChild: 1, RightChild: 1},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, IsLeaf: true},
	}, 13)
	if err == nil {
		t.Fatal("expected error for a feature index past the vector")
	}
}
