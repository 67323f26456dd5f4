package boost

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hollis-dev/aidtag/internal/feature"
)

// minError floors the weighted error of a perfect weak learner so its
// vote weight stays finite.
const minError = 1e-10

// AdaBoost is a discrete (SAMME) boosted ensemble of decision stumps
// for binary labels in {0,1}.
type AdaBoost struct {
	Rounds       int     `json:"rounds"`
	LearningRate float64 `json:"learning_rate"`

	Stumps []Stump   `json:"stumps,omitempty"`
	Alphas []float64 `json:"alphas,omitempty"`
	// Constant is set instead of an ensemble when the training data
	// holds a single class, so sparse categories cannot abort a run.
	Constant *int `json:"constant,omitempty"`
}

// New creates an unfit AdaBoost classifier.
func New(rounds int, learningRate float64) *AdaBoost {
	return &AdaBoost{Rounds: rounds, LearningRate: learningRate}
}

// Fit trains the ensemble on the feature matrix and aligned labels.
func (a *AdaBoost) Fit(m *feature.Matrix, labels []int) error {
	if m.Rows != len(labels) {
		return errors.Errorf("boost: %d rows but %d labels", m.Rows, len(labels))
	}
	return a.fitPrepared(sortedColumns(m), m.Rows, labels)
}

// fitPrepared runs the boosting loop over pre-sorted columns, shared by
// MultiOutput so the column sort happens once per matrix.
func (a *AdaBoost) fitPrepared(cols [][]feature.ColEntry, rows int, labels []int) error {
	if rows == 0 {
		return errors.New("boost: empty training data")
	}

	pos := 0
	for _, y := range labels {
		switch y {
		case 0:
		case 1:
			pos++
		default:
			return errors.Errorf("boost: label %d outside {0,1}", y)
		}
	}
	if pos == 0 || pos == rows {
		cls := 0
		if pos == rows {
			cls = 1
		}
		a.Constant = &cls
		zap.S().Warnf("boost: single-class training data, fitting constant classifier (class=%d)", cls)
		return nil
	}

	weights := make([]float64, rows)
	for i := range weights {
		weights[i] = 1 / float64(rows)
	}

	for round := 0; round < a.Rounds; round++ {
		stump, werr, ok := trainStump(cols, labels, weights)
		if !ok {
			break
		}
		if werr >= 0.5 {
			// The best weak learner is no better than chance under the
			// current weights; boosting has converged.
			break
		}
		if werr < minError {
			werr = minError
		}

		alpha := a.LearningRate * math.Log((1-werr)/werr)
		a.Stumps = append(a.Stumps, stump)
		a.Alphas = append(a.Alphas, alpha)

		if werr <= minError {
			break
		}

		preds := stumpPredictAll(stump, cols[stump.Feature], rows)
		var sum float64
		for i := range weights {
			if preds[i] != labels[i] {
				weights[i] *= math.Exp(alpha)
			}
			sum += weights[i]
		}
		for i := range weights {
			weights[i] /= sum
		}
	}

	if len(a.Stumps) == 0 {
		// No stump beat chance even once; fall back to the majority class.
		cls := 0
		if 2*pos > rows {
			cls = 1
		}
		a.Constant = &cls
		zap.S().Warnf("boost: no usable split found, fitting constant classifier (class=%d)", cls)
	}
	return nil
}

// Predict classifies every row of m by weighted stump vote.
func (a *AdaBoost) Predict(m *feature.Matrix) []int {
	out := make([]int, m.Rows)
	for i := range out {
		indices, values := m.Row(i)
		out[i] = a.predictRow(indices, values)
	}
	return out
}

func (a *AdaBoost) predictRow(indices []int, values []float64) int {
	if a.Constant != nil {
		return *a.Constant
	}
	var score float64
	for k, stump := range a.Stumps {
		if stump.Predict(indices, values) == 1 {
			score += a.Alphas[k]
		} else {
			score -= a.Alphas[k]
		}
	}
	if score > 0 {
		return 1
	}
	return 0
}
