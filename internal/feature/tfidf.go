package feature

import (
	"math"

	"github.com/pkg/errors"
)

// TFIDF rescales a count matrix with smoothed inverse document
// frequency weights and L2-normalizes each row. With UseIDF disabled
// the counts pass through unweighted but still row-normalized.
type TFIDF struct {
	UseIDF bool
	IDF    []float64
}

// NewTFIDF creates an unfit transform.
func NewTFIDF(useIDF bool) *TFIDF {
	return &TFIDF{UseIDF: useIDF}
}

// Fit learns the idf vector from the document frequencies of m:
// idf(t) = ln((1+n) / (1+df(t))) + 1.
func (t *TFIDF) Fit(m *Matrix) error {
	if !t.UseIDF {
		return nil
	}
	df := make([]int, m.Cols)
	for _, j := range m.Indices {
		df[j]++
	}
	n := float64(m.Rows)
	t.IDF = make([]float64, m.Cols)
	for j, count := range df {
		t.IDF[j] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return nil
}

// Transform applies the idf weights and L2 row normalization to m in
// place and returns it. The caller gives up ownership of m's data.
func (t *TFIDF) Transform(m *Matrix) (*Matrix, error) {
	if t.UseIDF {
		if t.IDF == nil {
			return nil, errors.New("tfidf: transform before fit")
		}
		if len(t.IDF) != m.Cols {
			return nil, errors.Errorf("tfidf: matrix has %d columns, idf has %d", m.Cols, len(t.IDF))
		}
	}

	for i := 0; i < m.Rows; i++ {
		indices, values := m.Row(i)
		if t.UseIDF {
			for k, j := range indices {
				values[k] *= t.IDF[j]
			}
		}
		var sq float64
		for _, v := range values {
			sq += v * v
		}
		if sq == 0 {
			continue
		}
		inv := 1 / math.Sqrt(sq)
		for k := range values {
			values[k] *= inv
		}
	}
	return m, nil
}
