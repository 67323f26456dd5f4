package pipeline

import (
	"github.com/pkg/errors"

	"github.com/hollis-dev/aidtag/internal/boost"
	"github.com/hollis-dev/aidtag/internal/feature"
	"github.com/hollis-dev/aidtag/internal/nlp"
)

// Params is one hyperparameter point for the classification pipeline.
// NGramMax, MaxDF, and UseIDF are the grid-searched axes; Rounds and
// LearningRate are shared boosting settings.
type Params struct {
	NGramMax     int     `json:"ngram_max"`
	MaxDF        float64 `json:"max_df"`
	UseIDF       bool    `json:"use_idf"`
	Rounds       int     `json:"rounds"`
	LearningRate float64 `json:"learning_rate"`
}

// Pipeline chains the fixed stage order: tokenize-and-count → TF-IDF →
// multi-output boosted classification. Stages are typed and composed
// once at construction; there is no dynamic registry.
type Pipeline struct {
	params Params

	vectorizer *feature.CountVectorizer
	tfidf      *feature.TFIDF
	classifier *boost.MultiOutput
}

// New builds an unfit pipeline for the given hyperparameter point.
func New(params Params) *Pipeline {
	tokenizer := nlp.NewTokenizer()
	return &Pipeline{
		params:     params,
		vectorizer: feature.NewCountVectorizer(tokenizer.Tokenize, params.NGramMax, params.MaxDF),
		tfidf:      feature.NewTFIDF(params.UseIDF),
		classifier: boost.NewMultiOutput(params.Rounds, params.LearningRate),
	}
}

// FromParts reassembles a pipeline from restored stages, re-attaching
// the tokenizer the serialized form cannot carry.
func FromParts(params Params, vec *feature.CountVectorizer, tfidf *feature.TFIDF, clf *boost.MultiOutput) *Pipeline {
	vec.SetTokenizer(nlp.NewTokenizer().Tokenize)
	return &Pipeline{
		params:     params,
		vectorizer: vec,
		tfidf:      tfidf,
		classifier: clf,
	}
}

// Fit trains every stage in order on the messages and their aligned
// label rows.
func (p *Pipeline) Fit(messages []string, labels [][]int) error {
	counts, err := p.vectorizer.FitTransform(messages)
	if err != nil {
		return errors.Wrap(err, "pipeline: vectorize")
	}
	if err := p.tfidf.Fit(counts); err != nil {
		return errors.Wrap(err, "pipeline: tfidf fit")
	}
	weighted, err := p.tfidf.Transform(counts)
	if err != nil {
		return errors.Wrap(err, "pipeline: tfidf transform")
	}
	if err := p.classifier.Fit(weighted, labels); err != nil {
		return errors.Wrap(err, "pipeline: classify")
	}
	return nil
}

// Predict runs the fitted stages over messages and returns one binary
// label row per message.
func (p *Pipeline) Predict(messages []string) ([][]int, error) {
	counts, err := p.vectorizer.Transform(messages)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: vectorize")
	}
	weighted, err := p.tfidf.Transform(counts)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: tfidf transform")
	}
	preds, err := p.classifier.Predict(weighted)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: classify")
	}
	return preds, nil
}

// Params returns the hyperparameter point the pipeline was built with.
func (p *Pipeline) Params() Params {
	return p.params
}

// Vectorizer exposes the count stage for serialization.
func (p *Pipeline) Vectorizer() *feature.CountVectorizer {
	return p.vectorizer
}

// TFIDF exposes the weighting stage for serialization.
func (p *Pipeline) TFIDF() *feature.TFIDF {
	return p.tfidf
}

// Classifier exposes the boosted ensemble stage for serialization.
func (p *Pipeline) Classifier() *boost.MultiOutput {
	return p.classifier
}
