package feature

import (
	"math"
	"testing"
)

func countMatrix() *Matrix {
	m := NewMatrix(2)
	m.AppendRow([]int{0}, []float64{1})
	m.AppendRow([]int{0, 1}, []float64{1, 1})
	return m
}

func rowNorm(m *Matrix, i int) float64 {
	_, values := m.Row(i)
	var sq float64
	for _, v := range values {
		sq += v * v
	}
	return math.Sqrt(sq)
}

func TestTFIDF_SmoothedIDF(t *testing.T) {
	tf := NewTFIDF(true)
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	// idf = ln((1+n)/(1+df)) + 1 with n=2: df=2 -> 1.0, df=1 -> ln(1.5)+1.
	if math.Abs(tf.IDF[0]-1.0) > 1e-12 {
		t.Fatalf("expected idf[0]=1.0, got %g", tf.IDF[0])
	}
	want := math.Log(1.5) + 1
	if math.Abs(tf.IDF[1]-want) > 1e-12 {
		t.Fatalf("expected idf[1]=%g, got %g", want, tf.IDF[1])
	}
}

func TestTFIDF_TransformWeightsAndNormalizes(t *testing.T) {
	tf := NewTFIDF(true)
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	m, err := tf.Transform(countMatrix())
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	for i := 0; i < m.Rows; i++ {
		if norm := rowNorm(m, i); math.Abs(norm-1.0) > 1e-12 {
			t.Fatalf("row %d: expected unit L2 norm, got %g", i, norm)
		}
	}

	// In row 1 the rarer term carries more weight than the common one.
	_, values := m.Row(1)
	if values[1] <= values[0] {
		t.Fatalf("expected rare term to outweigh common term, got %v", values)
	}
}

func TestTFIDF_Disabled(t *testing.T) {
	tf := NewTFIDF(false)
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if tf.IDF != nil {
		t.Fatal("expected no idf vector with use_idf disabled")
	}

	m, err := tf.Transform(countMatrix())
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	// Counts pass through unweighted but rows are still normalized.
	_, values := m.Row(1)
	if math.Abs(values[0]-values[1]) > 1e-12 {
		t.Fatalf("expected equal weights without idf, got %v", values)
	}
	if norm := rowNorm(m, 1); math.Abs(norm-1.0) > 1e-12 {
		t.Fatalf("expected unit L2 norm, got %g", norm)
	}
}

func TestTFIDF_TransformBeforeFit(t *testing.T) {
	tf := NewTFIDF(true)
	if _, err := tf.Transform(countMatrix()); err == nil {
		t.Fatal("expected error for transform before fit")
	}
}

func TestTFIDF_EmptyRowSurvives(t *testing.T) {
	m := NewMatrix(2)
	m.AppendRow(nil, nil)
	m.AppendRow([]int{1}, []float64{2})

	tf := NewTFIDF(true)
	if err := tf.Fit(m); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	out, err := tf.Transform(m)
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if indices, _ := out.Row(0); len(indices) != 0 {
		t.Fatalf("expected empty row to stay empty, got %v", indices)
	}
}
