package artifact

import (
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hollis-dev/aidtag/internal/boost"
	"github.com/hollis-dev/aidtag/internal/feature"
	"github.com/hollis-dev/aidtag/internal/pipeline"
)

// FormatVersion guards against loading artifacts written by an
// incompatible release.
const FormatVersion = 1

// Artifact is the on-disk form of a trained pipeline. The tokenizer is
// deterministic and carries no learned state, so only the vocabulary,
// idf weights, and boosted ensembles are persisted.
type Artifact struct {
	FormatVersion int       `json:"format_version"`
	RunID         string    `json:"run_id"`
	TrainedAt     time.Time `json:"trained_at"`

	Params     pipeline.Params    `json:"params"`
	Categories []string           `json:"categories"`
	Vocabulary map[string]int     `json:"vocabulary"`
	IDF        []float64          `json:"idf,omitempty"`
	Classifier *boost.MultiOutput `json:"classifier"`
}

// Save writes the fitted pipeline and its category list to path as a
// single JSON document.
func Save(path string, p *pipeline.Pipeline, categories []string) error {
	a := Artifact{
		FormatVersion: FormatVersion,
		RunID:         uuid.NewString(),
		TrainedAt:     time.Now().UTC(),
		Params:        p.Params(),
		Categories:    categories,
		Vocabulary:    p.Vectorizer().Vocabulary,
		IDF:           p.TFIDF().IDF,
		Classifier:    p.Classifier(),
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "artifact: create %s", path)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(a); err != nil {
		return errors.Wrapf(err, "artifact: encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "artifact: close %s", path)
	}

	zap.S().Infof("artifact: saved model %s to %s", a.RunID, path)
	return nil
}

// Load reads an artifact and reassembles a prediction-ready pipeline
// together with its category list.
func Load(path string) (*pipeline.Pipeline, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "artifact: open %s", path)
	}
	defer f.Close()

	var a Artifact
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return nil, nil, errors.Wrapf(err, "artifact: decode %s", path)
	}
	if a.FormatVersion != FormatVersion {
		return nil, nil, errors.Errorf("artifact: format version %d, expected %d", a.FormatVersion, FormatVersion)
	}
	if len(a.Vocabulary) == 0 {
		return nil, nil, errors.Errorf("artifact: %s has an empty vocabulary", path)
	}
	if a.Classifier == nil || len(a.Classifier.Classifiers) == 0 {
		return nil, nil, errors.Errorf("artifact: %s has no trained classifiers", path)
	}
	if len(a.Categories) != len(a.Classifier.Classifiers) {
		return nil, nil, errors.Errorf("artifact: %d categories but %d classifiers", len(a.Categories), len(a.Classifier.Classifiers))
	}

	vec := feature.NewCountVectorizer(nil, a.Params.NGramMax, a.Params.MaxDF)
	vec.Vocabulary = a.Vocabulary
	tfidf := feature.NewTFIDF(a.Params.UseIDF)
	tfidf.IDF = a.IDF

	return pipeline.FromParts(a.Params, vec, tfidf, a.Classifier), a.Categories, nil
}
