package boost

import (
	"sort"

	"github.com/hollis-dev/aidtag/internal/feature"
)

// Stump is a one-level decision tree over a single feature: rows whose
// feature value is at most Threshold predict Left, the rest predict
// Right. Feature values are non-negative, so rows absent from a sparse
// column always fall on the left side.
type Stump struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
}

// Predict classifies one sparse row given its column indices and values.
func (s Stump) Predict(indices []int, values []float64) int {
	v := 0.0
	k := sort.SearchInts(indices, s.Feature)
	if k < len(indices) && indices[k] == s.Feature {
		v = values[k]
	}
	if v <= s.Threshold {
		return s.Left
	}
	return s.Right
}

// sortedColumns regroups the matrix by column with entries sorted by
// value ascending, the layout the threshold sweep needs. Built once per
// fit and shared across boosting rounds and output columns.
func sortedColumns(m *feature.Matrix) [][]feature.ColEntry {
	cols := m.ColumnEntries()
	for _, col := range cols {
		sort.Slice(col, func(a, b int) bool { return col[a].Value < col[b].Value })
	}
	return cols
}

// trainStump finds the stump minimizing the weighted classification
// error. Candidate thresholds lie halfway between consecutive distinct
// values of each column, with the implicit zero block of the sparse
// column forming the lowest group. Returns ok=false when no column
// offers a split (for example, a matrix with no stored entries).
func trainStump(cols [][]feature.ColEntry, labels []int, weights []float64) (best Stump, bestErr float64, ok bool) {
	var totalPos, totalNeg float64
	for i, y := range labels {
		if y == 1 {
			totalPos += weights[i]
		} else {
			totalNeg += weights[i]
		}
	}

	bestErr = totalPos + totalNeg + 1
	for j, col := range cols {
		if len(col) == 0 {
			continue
		}

		var colPos, colNeg float64
		for _, e := range col {
			if labels[e.Row] == 1 {
				colPos += weights[e.Row]
			} else {
				colNeg += weights[e.Row]
			}
		}
		// Weight mass of the implicit zero rows, which sit below every
		// stored value.
		leftPos := totalPos - colPos
		leftNeg := totalNeg - colNeg

		prev := 0.0
		k := 0
		for k < len(col) {
			// Evaluate the boundary below col[k], unless the left side
			// is empty (a constant stump is useless to boosting).
			if leftPos+leftNeg > 0 {
				threshold := (prev + col[k].Value) / 2
				// Left predicts 0, right predicts 1.
				if err := leftPos + (totalNeg - leftNeg); err < bestErr {
					bestErr = err
					best = Stump{Feature: j, Threshold: threshold, Left: 0, Right: 1}
					ok = true
				}
				// Left predicts 1, right predicts 0.
				if err := leftNeg + (totalPos - leftPos); err < bestErr {
					bestErr = err
					best = Stump{Feature: j, Threshold: threshold, Left: 1, Right: 0}
					ok = true
				}
			}

			// Absorb the whole group of equal values.
			val := col[k].Value
			for k < len(col) && col[k].Value == val {
				if labels[col[k].Row] == 1 {
					leftPos += weights[col[k].Row]
				} else {
					leftNeg += weights[col[k].Row]
				}
				k++
			}
			prev = val
		}
	}
	return best, bestErr, ok
}

// stumpPredictAll classifies every row against s using the sorted
// column layout. Rows absent from the column get the left class.
func stumpPredictAll(s Stump, col []feature.ColEntry, rows int) []int {
	preds := make([]int, rows)
	if s.Left != 0 {
		for i := range preds {
			preds[i] = s.Left
		}
	}
	for _, e := range col {
		if e.Value > s.Threshold {
			preds[e.Row] = s.Right
		}
	}
	return preds
}
