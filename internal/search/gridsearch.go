package search

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hollis-dev/aidtag/internal/pipeline"
)

// Grid is the exhaustive hyperparameter grid. The three axes multiply
// into the candidate list; Rounds and LearningRate apply to every
// candidate.
type Grid struct {
	NGramMax     []int
	MaxDF        []float64
	UseIDF       []bool
	Rounds       int
	LearningRate float64
}

// Candidates enumerates every axis combination in a fixed order, so
// tie-breaking between equal scores is deterministic.
func (g Grid) Candidates() []pipeline.Params {
	params := make([]pipeline.Params, 0, len(g.NGramMax)*len(g.MaxDF)*len(g.UseIDF))
	for _, n := range g.NGramMax {
		for _, df := range g.MaxDF {
			for _, idf := range g.UseIDF {
				params = append(params, pipeline.Params{
					NGramMax:     n,
					MaxDF:        df,
					UseIDF:       idf,
					Rounds:       g.Rounds,
					LearningRate: g.LearningRate,
				})
			}
		}
	}
	return params
}

// CandidateScore is the cross-validated score of one grid point.
type CandidateScore struct {
	Params       pipeline.Params
	MeanAccuracy float64
}

// Result holds the refit winner and the per-candidate scores.
type Result struct {
	Best       *pipeline.Pipeline
	BestParams pipeline.Params
	BestScore  float64
	Scores     []CandidateScore
}

// GridSearch cross-validates every candidate with k contiguous folds,
// scoring by exact-match (subset) accuracy, then refits the best
// candidate on the full training data. Candidate/fold fits fan out
// across all available cores; the first failure cancels the rest.
func GridSearch(ctx context.Context, grid Grid, messages []string, labels [][]int, folds int) (*Result, error) {
	candidates := grid.Candidates()
	if len(candidates) == 0 {
		return nil, errors.New("search: empty grid")
	}
	n := len(messages)
	if n != len(labels) {
		return nil, errors.Errorf("search: %d messages but %d label rows", n, len(labels))
	}
	if n < folds {
		return nil, errors.Errorf("search: %d samples cannot fill %d folds", n, folds)
	}

	splits := KFold(n, folds)
	scores := make([][]float64, len(candidates))
	for ci := range scores {
		scores[ci] = make([]float64, folds)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for ci, params := range candidates {
		ci, params := ci, params
		for fi, fold := range splits {
			fi, fold := fi, fold
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				p := pipeline.New(params)
				if err := p.Fit(take(messages, fold.Train), takeLabels(labels, fold.Train)); err != nil {
					return errors.Wrapf(err, "search: candidate %d fold %d", ci, fi)
				}
				preds, err := p.Predict(take(messages, fold.Val))
				if err != nil {
					return errors.Wrapf(err, "search: candidate %d fold %d", ci, fi)
				}
				acc := subsetAccuracy(preds, takeLabels(labels, fold.Val))

				mu.Lock()
				scores[ci][fi] = acc
				mu.Unlock()
				zap.S().Debugf("search: candidate %d fold %d accuracy=%.4f", ci, fi, acc)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Scores: make([]CandidateScore, len(candidates))}
	bestIdx := 0
	for ci, params := range candidates {
		var sum float64
		for _, acc := range scores[ci] {
			sum += acc
		}
		mean := sum / float64(folds)
		result.Scores[ci] = CandidateScore{Params: params, MeanAccuracy: mean}
		zap.S().Infof("search: candidate %d/%d ngram_max=%d max_df=%g use_idf=%t accuracy=%.4f",
			ci+1, len(candidates), params.NGramMax, params.MaxDF, params.UseIDF, mean)
		if mean > result.Scores[bestIdx].MeanAccuracy {
			bestIdx = ci
		}
	}

	result.BestParams = result.Scores[bestIdx].Params
	result.BestScore = result.Scores[bestIdx].MeanAccuracy
	zap.S().Infof("search: best candidate ngram_max=%d max_df=%g use_idf=%t accuracy=%.4f",
		result.BestParams.NGramMax, result.BestParams.MaxDF, result.BestParams.UseIDF, result.BestScore)

	// Refit the winner on everything it is allowed to see.
	result.Best = pipeline.New(result.BestParams)
	if err := result.Best.Fit(messages, labels); err != nil {
		return nil, errors.Wrap(err, "search: refit best candidate")
	}
	return result, nil
}

// subsetAccuracy is the fraction of rows whose predicted label vector
// matches the actual vector exactly.
func subsetAccuracy(preds, actual [][]int) float64 {
	if len(actual) == 0 {
		return 0
	}
	matches := 0
	for i := range actual {
		match := true
		for c := range actual[i] {
			if preds[i][c] != actual[i][c] {
				match = false
				break
			}
		}
		if match {
			matches++
		}
	}
	return float64(matches) / float64(len(actual))
}

func take(values []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, row := range idx {
		out[i] = values[row]
	}
	return out
}

func takeLabels(labels [][]int, idx []int) [][]int {
	out := make([][]int, len(idx))
	for i, row := range idx {
		out[i] = labels[row]
	}
	return out
}
