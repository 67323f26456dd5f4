package search

import "math/rand"

// TrainTestSplit shuffles row indices with a seeded source and splits
// off the trailing testFraction as the held-out set. The same seed
// always produces the same split.
func TrainTestSplit(n int, testFraction float64, seed int64) (train, test []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	testSize := int(float64(n) * testFraction)
	if testSize < 1 && n > 1 {
		testSize = 1
	}
	cut := n - testSize
	return idx[:cut], idx[cut:]
}

// Fold is one cross-validation split of row indices.
type Fold struct {
	Train []int
	Val   []int
}

// KFold partitions n rows into k contiguous folds without shuffling.
// The first n mod k folds receive one extra row.
func KFold(n, k int) []Fold {
	folds := make([]Fold, 0, k)
	base := n / k
	extra := n % k

	start := 0
	for f := 0; f < k; f++ {
		size := base
		if f < extra {
			size++
		}
		end := start + size

		val := make([]int, 0, size)
		train := make([]int, 0, n-size)
		for i := 0; i < n; i++ {
			if i >= start && i < end {
				val = append(val, i)
			} else {
				train = append(train, i)
			}
		}
		folds = append(folds, Fold{Train: train, Val: val})
		start = end
	}
	return folds
}
