package trainer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hollis-dev/aidtag/internal/artifact"
	"github.com/hollis-dev/aidtag/internal/config"
	"github.com/hollis-dev/aidtag/internal/report"
	"github.com/hollis-dev/aidtag/internal/search"
	"github.com/hollis-dev/aidtag/internal/store"
)

// Trainer runs the full training recipe: load, split, grid search,
// evaluate, persist.
type Trainer struct {
	cfg *config.Config
	out io.Writer
}

// Option adjusts a Trainer at construction.
type Option func(*Trainer)

// WithOutput redirects the user-facing progress and report output,
// which otherwise goes to stdout.
func WithOutput(w io.Writer) Option {
	return func(t *Trainer) {
		t.out = w
	}
}

// New builds a trainer for the given configuration.
func New(cfg *config.Config, opts ...Option) *Trainer {
	t := &Trainer{cfg: cfg, out: os.Stdout}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run trains a classifier from the database at dbPath and writes the
// resulting model artifact to modelPath. Progress goes to the trainer's
// output writer; diagnostics go to the structured log.
func (t *Trainer) Run(ctx context.Context, dbPath, modelPath string) error {
	started := time.Now()

	fmt.Fprintf(t.out, "Loading data...\n    DATABASE: %s\n", dbPath)
	s, err := store.Open(dbPath, t.cfg.Data.Table, t.cfg.Data.LabelOffset)
	if err != nil {
		return errors.Wrap(err, "trainer: open store")
	}
	defer s.Close()

	ds, err := s.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "trainer: load dataset")
	}

	trainIdx, testIdx := search.TrainTestSplit(len(ds.Messages), t.cfg.Training.TestFraction, t.cfg.Training.Seed)
	train := ds.Subset(trainIdx)
	test := ds.Subset(testIdx)
	zap.S().Infof("trainer: split %d train / %d test rows", len(train.Messages), len(test.Messages))

	fmt.Fprintln(t.out, "Building model...")
	grid := search.Grid{
		NGramMax:     t.cfg.Grid.NGramMax,
		MaxDF:        t.cfg.Grid.MaxDF,
		UseIDF:       t.cfg.Grid.UseIDF,
		Rounds:       t.cfg.Training.Rounds,
		LearningRate: t.cfg.Training.LearningRate,
	}

	fmt.Fprintln(t.out, "Training model...")
	result, err := search.GridSearch(ctx, grid, train.Messages, train.Labels, t.cfg.Training.Folds)
	if err != nil {
		return errors.Wrap(err, "trainer: grid search")
	}

	fmt.Fprintln(t.out, "Evaluating model...")
	preds, err := result.Best.Predict(test.Messages)
	if err != nil {
		return errors.Wrap(err, "trainer: predict test split")
	}
	scores, err := report.Evaluate(preds, test.Labels, ds.Categories)
	if err != nil {
		return errors.Wrap(err, "trainer: evaluate")
	}
	if err := report.Print(t.out, scores); err != nil {
		return errors.Wrap(err, "trainer: print report")
	}

	fmt.Fprintf(t.out, "Saving model...\n    MODEL: %s\n", modelPath)
	if err := artifact.Save(modelPath, result.Best, ds.Categories); err != nil {
		return errors.Wrap(err, "trainer: save model")
	}

	fmt.Fprintln(t.out, "Trained model saved!")
	zap.S().Infof("trainer: finished in %s", time.Since(started).Round(time.Millisecond))
	return nil
}
