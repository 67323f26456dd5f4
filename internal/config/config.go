package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all training configuration. Every field has a working
// default; a YAML config file is optional and only overrides what it sets.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Training TrainingConfig `json:"training" yaml:"training"`
	Grid     GridConfig     `json:"grid" yaml:"grid"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// DataConfig describes where the corpus lives inside the database.
type DataConfig struct {
	// Table is the name of the messages table.
	Table string `json:"table" yaml:"table"`
	// LabelOffset is the column index at which the one-hot category
	// columns start. The schema is fixed by the upstream ingestion
	// stage, so the offset is configuration rather than discovery.
	LabelOffset int `json:"labelOffset" yaml:"labelOffset"`
}

// TrainingConfig holds split and boosting parameters shared by every
// grid candidate.
type TrainingConfig struct {
	TestFraction float64 `json:"testFraction" yaml:"testFraction"`
	Folds        int     `json:"folds" yaml:"folds"`
	Seed         int64   `json:"seed" yaml:"seed"`
	Rounds       int     `json:"rounds" yaml:"rounds"`
	LearningRate float64 `json:"learningRate" yaml:"learningRate"`
}

// GridConfig enumerates the hyperparameter values the grid search
// combines exhaustively.
type GridConfig struct {
	NGramMax []int     `json:"ngramMax" yaml:"ngramMax"`
	MaxDF    []float64 `json:"maxDF" yaml:"maxDF"`
	UseIDF   []bool    `json:"useIDF" yaml:"useIDF"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// NewDefault returns the configuration used when no file is supplied:
// the grid and boosting defaults of the original training recipe.
func NewDefault() *Config {
	return &Config{
		Data: DataConfig{
			Table:       "messages",
			LabelOffset: 4,
		},
		Training: TrainingConfig{
			TestFraction: 0.2,
			Folds:        5,
			Seed:         42,
			Rounds:       50,
			LearningRate: 1.0,
		},
		Grid: GridConfig{
			NGramMax: []int{1, 2},
			MaxDF:    []float64{0.1, 0.5, 0.75},
			UseIDF:   []bool{true, false},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every problem with the configuration rather than
// stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error
	if c.Data.Table == "" {
		errs = append(errs, errors.New("data.table must not be empty"))
	}
	if c.Data.LabelOffset < 1 {
		errs = append(errs, errors.Errorf("data.labelOffset must be at least 1, got %d", c.Data.LabelOffset))
	}
	if c.Training.TestFraction <= 0 || c.Training.TestFraction >= 1 {
		errs = append(errs, errors.Errorf("training.testFraction must be in (0, 1), got %g", c.Training.TestFraction))
	}
	if c.Training.Folds < 2 {
		errs = append(errs, errors.Errorf("training.folds must be at least 2, got %d", c.Training.Folds))
	}
	if c.Training.Rounds < 1 {
		errs = append(errs, errors.Errorf("training.rounds must be at least 1, got %d", c.Training.Rounds))
	}
	if c.Training.LearningRate <= 0 {
		errs = append(errs, errors.Errorf("training.learningRate must be positive, got %g", c.Training.LearningRate))
	}
	if len(c.Grid.NGramMax) == 0 {
		errs = append(errs, errors.New("grid.ngramMax must list at least one value"))
	}
	for _, n := range c.Grid.NGramMax {
		if n < 1 {
			errs = append(errs, errors.Errorf("grid.ngramMax values must be at least 1, got %d", n))
		}
	}
	if len(c.Grid.MaxDF) == 0 {
		errs = append(errs, errors.New("grid.maxDF must list at least one value"))
	}
	for _, df := range c.Grid.MaxDF {
		if df <= 0 || df > 1 {
			errs = append(errs, errors.Errorf("grid.maxDF values must be in (0, 1], got %g", df))
		}
	}
	if len(c.Grid.UseIDF) == 0 {
		errs = append(errs, errors.New("grid.useIDF must list at least one value"))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, errors.Errorf("log.format must be \"console\" or \"json\", got %q", c.Log.Format))
	}
	return errs
}

// TryLoadFromDisk reads a config file with viper, layering it over the
// defaults. The file's extension selects both the viper config type and
// the struct tag used for decoding.
func TryLoadFromDisk(configFilePath string) (*Config, error) {
	if _, err := os.Stat(configFilePath); err != nil {
		return nil, err
	}
	dir, file := filepath.Split(configFilePath)
	fileType := filepath.Ext(file)

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(file, fileType))
	v.SetConfigType(strings.TrimPrefix(fileType, "."))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", configFilePath)
	}

	cfg := NewDefault()
	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = strings.TrimPrefix(fileType, ".")
	}); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", configFilePath)
	}
	return cfg, nil
}
