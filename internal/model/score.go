package model

// CategoryScore holds the held-out evaluation metrics for one category.
// Precision, recall, and F1 are binary with positive class 1; Support is
// the number of actual positives in the test split.
type CategoryScore struct {
	Category  string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}
