package boost

import (
	"testing"

	"github.com/hollis-dev/aidtag/internal/feature"
)

// twoColMatrix returns a 4x2 matrix:
//
//	row 0: (0, 0)      label 0
//	row 1: (2, 0)      label 1
//	row 2: (3, 1)      label 1
//	row 3: (0, 2)      label 0
func twoColMatrix() *feature.Matrix {
	m := feature.NewMatrix(2)
	m.AppendRow(nil, nil)
	m.AppendRow([]int{0}, []float64{2})
	m.AppendRow([]int{0, 1}, []float64{3, 1})
	m.AppendRow([]int{1}, []float64{2})
	return m
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	return w
}

func TestTrainStump_SeparableColumn(t *testing.T) {
	m := twoColMatrix()
	labels := []int{0, 1, 1, 0}

	stump, werr, ok := trainStump(sortedColumns(m), labels, uniformWeights(4))
	if !ok {
		t.Fatal("expected a usable stump")
	}
	if werr > 1e-12 {
		t.Fatalf("expected zero weighted error, got %g", werr)
	}
	if stump.Feature != 0 {
		t.Fatalf("expected split on feature 0, got %d", stump.Feature)
	}
	// Boundary between the zero block and the first stored value (2).
	if stump.Threshold != 1 {
		t.Fatalf("expected threshold 1, got %g", stump.Threshold)
	}
	if stump.Left != 0 || stump.Right != 1 {
		t.Fatalf("expected left=0 right=1, got left=%d right=%d", stump.Left, stump.Right)
	}
}

func TestTrainStump_InvertedPolarity(t *testing.T) {
	m := twoColMatrix()
	// Positive class sits in the zero block of feature 0.
	labels := []int{1, 0, 0, 1}

	stump, werr, ok := trainStump(sortedColumns(m), labels, uniformWeights(4))
	if !ok {
		t.Fatal("expected a usable stump")
	}
	if werr > 1e-12 {
		t.Fatalf("expected zero weighted error, got %g", werr)
	}
	if stump.Left != 1 || stump.Right != 0 {
		t.Fatalf("expected left=1 right=0, got left=%d right=%d", stump.Left, stump.Right)
	}
}

func TestTrainStump_EmptyMatrix(t *testing.T) {
	m := feature.NewMatrix(2)
	m.AppendRow(nil, nil)
	m.AppendRow(nil, nil)

	_, _, ok := trainStump(sortedColumns(m), []int{0, 1}, uniformWeights(2))
	if ok {
		t.Fatal("expected no usable stump for a matrix with no stored entries")
	}
}

func TestStumpPredict_SparseRow(t *testing.T) {
	s := Stump{Feature: 1, Threshold: 0.5, Left: 0, Right: 1}

	if got := s.Predict([]int{1}, []float64{2}); got != 1 {
		t.Fatalf("expected class 1 above threshold, got %d", got)
	}
	if got := s.Predict([]int{1}, []float64{0.2}); got != 0 {
		t.Fatalf("expected class 0 below threshold, got %d", got)
	}
	// The feature is absent: implicit zero falls left.
	if got := s.Predict([]int{0, 2}, []float64{5, 5}); got != 0 {
		t.Fatalf("expected class 0 for absent feature, got %d", got)
	}
	if got := s.Predict(nil, nil); got != 0 {
		t.Fatalf("expected class 0 for empty row, got %d", got)
	}
}

func TestStumpPredictAll(t *testing.T) {
	m := twoColMatrix()
	s := Stump{Feature: 0, Threshold: 1, Left: 0, Right: 1}

	preds := stumpPredictAll(s, sortedColumns(m)[0], m.Rows)
	want := []int{0, 1, 1, 0}
	for i := range want {
		if preds[i] != want[i] {
			t.Fatalf("row %d: expected %d, got %d (all: %v)", i, want[i], preds[i], preds)
		}
	}
}
