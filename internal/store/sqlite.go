package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hollis-dev/aidtag/internal/model"
)

// relatedColumn is the label column whose anomalous value 2 is clamped
// to the positive class on load. The clamp mirrors the upstream
// ingestion quirk; it reads as a data-quality workaround rather than
// intended semantics.
const relatedColumn = "related"

// Store reads the pre-cleaned disaster message corpus out of a SQLite
// database produced by the external ingestion stage.
type Store struct {
	db          *sql.DB
	table       string
	labelOffset int
}

// Open connects to the SQLite database at path. The file must already
// exist: the driver would otherwise silently create an empty database
// and the failure would surface later as a confusing missing-table
// error.
func Open(path, table string, labelOffset int) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "store: database %s", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "store: ping %s", path)
	}

	zap.S().Debugf("store: opened %s", path)
	return &Store{db: db, table: table, labelOffset: labelOffset}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the whole messages table. Columns before the label offset
// are metadata (the message text lives in the "message" column); every
// column from the offset on is a binary category whose name and
// position define the category list.
func (s *Store) Load(ctx context.Context) (*model.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", s.table))
	if err != nil {
		return nil, errors.Wrapf(err, "store: query %s", s.table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "store: columns")
	}
	if len(cols) <= s.labelOffset {
		return nil, errors.Errorf("store: table %s has %d columns, need more than %d", s.table, len(cols), s.labelOffset)
	}

	messageIdx := -1
	for i, name := range cols[:s.labelOffset] {
		if name == "message" {
			messageIdx = i
			break
		}
	}
	if messageIdx < 0 {
		return nil, errors.Errorf("store: table %s has no \"message\" column before offset %d", s.table, s.labelOffset)
	}

	categories := append([]string(nil), cols[s.labelOffset:]...)
	relatedIdx := -1
	for c, name := range categories {
		if name == relatedColumn {
			relatedIdx = c
			break
		}
	}

	ds := &model.Dataset{Categories: categories}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	rowNum := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "store: scan row %d", rowNum)
		}

		message, ok := asString(values[messageIdx])
		if !ok {
			return nil, errors.Errorf("store: row %d: message is not text", rowNum)
		}

		labels := make([]int, len(categories))
		for c := range categories {
			v, err := asLabel(values[s.labelOffset+c])
			if err != nil {
				return nil, errors.Wrapf(err, "store: row %d column %s", rowNum, categories[c])
			}
			if c == relatedIdx && v == 2 {
				v = 1
			}
			labels[c] = v
		}

		ds.Messages = append(ds.Messages, message)
		ds.Labels = append(ds.Labels, labels)
		rowNum++
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "store: iterate rows")
	}
	if len(ds.Messages) == 0 {
		return nil, errors.Errorf("store: table %s is empty", s.table)
	}

	zap.S().Infof("store: loaded %d messages across %d categories", len(ds.Messages), len(categories))
	return ds, nil
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

func asLabel(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errors.Errorf("label value %v (%T) is not numeric", v, v)
	}
}
