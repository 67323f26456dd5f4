package boost

import (
	"github.com/pkg/errors"

	"github.com/hollis-dev/aidtag/internal/feature"
)

// MultiOutput trains one independent AdaBoost classifier per label
// column over a shared feature matrix. Prediction returns one binary
// column per category, in the training column order.
type MultiOutput struct {
	Rounds       int     `json:"rounds"`
	LearningRate float64 `json:"learning_rate"`

	Classifiers []*AdaBoost `json:"classifiers,omitempty"`
}

// NewMultiOutput creates an unfit multi-output classifier.
func NewMultiOutput(rounds int, learningRate float64) *MultiOutput {
	return &MultiOutput{Rounds: rounds, LearningRate: learningRate}
}

// Fit trains one classifier per column of labels. labels is row-major:
// labels[i][c] is category c of sample i.
func (mo *MultiOutput) Fit(m *feature.Matrix, labels [][]int) error {
	if m.Rows != len(labels) {
		return errors.Errorf("boost: %d rows but %d label rows", m.Rows, len(labels))
	}
	if len(labels) == 0 {
		return errors.New("boost: empty training data")
	}
	outputs := len(labels[0])
	for i, row := range labels {
		if len(row) != outputs {
			return errors.Errorf("boost: label row %d has %d columns, expected %d", i, len(row), outputs)
		}
	}

	// Sort columns once; every per-category fit reuses the layout.
	cols := sortedColumns(m)

	mo.Classifiers = make([]*AdaBoost, outputs)
	column := make([]int, m.Rows)
	for c := 0; c < outputs; c++ {
		for i := range labels {
			column[i] = labels[i][c]
		}
		clf := New(mo.Rounds, mo.LearningRate)
		if err := clf.fitPrepared(cols, m.Rows, column); err != nil {
			return errors.Wrapf(err, "boost: output %d", c)
		}
		mo.Classifiers[c] = clf
	}
	return nil
}

// Predict classifies every row of m across all categories.
func (mo *MultiOutput) Predict(m *feature.Matrix) ([][]int, error) {
	if len(mo.Classifiers) == 0 {
		return nil, errors.New("boost: predict before fit")
	}

	out := make([][]int, m.Rows)
	for i := range out {
		out[i] = make([]int, len(mo.Classifiers))
	}
	for c, clf := range mo.Classifiers {
		for i, y := range clf.Predict(m) {
			out[i][c] = y
		}
	}
	return out, nil
}
