package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hollis-dev/aidtag/internal/model"
)

// Evaluate scores predictions against the held-out labels, one row per
// category: precision, recall, and F1 with positive class 1. A zero
// denominator (no predicted positives, or no actual positives) scores
// 0.0 for the affected metric and logs a warning rather than failing
// the run.
func Evaluate(preds, actual [][]int, categories []string) ([]model.CategoryScore, error) {
	if len(preds) != len(actual) {
		return nil, errors.Errorf("report: %d prediction rows but %d label rows", len(preds), len(actual))
	}
	if len(actual) == 0 {
		return nil, errors.New("report: empty test split")
	}
	if len(actual[0]) != len(categories) {
		return nil, errors.Errorf("report: %d label columns but %d categories", len(actual[0]), len(categories))
	}

	scores := make([]model.CategoryScore, len(categories))
	for c, category := range categories {
		var tp, fp, fn int
		for i := range actual {
			switch {
			case preds[i][c] == 1 && actual[i][c] == 1:
				tp++
			case preds[i][c] == 1:
				fp++
			case actual[i][c] == 1:
				fn++
			}
		}

		precision := safeRatio(tp, tp+fp, category, "precision")
		recall := safeRatio(tp, tp+fn, category, "recall")
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		scores[c] = model.CategoryScore{
			Category:  category,
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   tp + fn,
		}
	}
	return scores, nil
}

func safeRatio(num, den int, category, metric string) float64 {
	if den == 0 {
		zap.S().Warnf("report: %s undefined for %q (zero denominator), reporting 0.0", metric, category)
		return 0
	}
	return float64(num) / float64(den)
}

// Print writes the aligned per-category score table to w.
func Print(w io.Writer, scores []model.CategoryScore) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tPRECISION\tRECALL\tF1\tSUPPORT")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%d\n", s.Category, s.Precision, s.Recall, s.F1, s.Support)
	}
	return tw.Flush()
}
