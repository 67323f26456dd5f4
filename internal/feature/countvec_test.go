package feature

import (
	"strings"
	"testing"
)

// splitTokenizer is a trivial tokenizer for vectorizer tests; the real
// lexical pipeline is covered in internal/nlp.
func splitTokenizer(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func TestFitTransform_Unigrams(t *testing.T) {
	docs := []string{
		"water water food",
		"food shelter",
	}
	v := NewCountVectorizer(splitTokenizer, 1, 1.0)
	m, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	// Vocabulary is alphabetical: food=0, shelter=1, water=2.
	if len(v.Vocabulary) != 3 {
		t.Fatalf("expected 3 vocabulary terms, got %d", len(v.Vocabulary))
	}
	if v.Vocabulary["food"] != 0 || v.Vocabulary["shelter"] != 1 || v.Vocabulary["water"] != 2 {
		t.Fatalf("expected alphabetical vocabulary, got %v", v.Vocabulary)
	}

	indices, values := m.Row(0)
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 2 {
		t.Fatalf("row 0: unexpected indices %v", indices)
	}
	if values[0] != 1 || values[1] != 2 {
		t.Fatalf("row 0: expected counts [1 2], got %v", values)
	}
}

func TestFitTransform_Bigrams(t *testing.T) {
	v := NewCountVectorizer(splitTokenizer, 2, 1.0)
	m, err := v.FitTransform([]string{"need clean water"})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	// 3 unigrams + 2 bigrams.
	if m.Cols != 5 {
		t.Fatalf("expected 5 vocabulary terms, got %d", m.Cols)
	}
	if _, ok := v.Vocabulary["clean water"]; !ok {
		t.Fatalf("expected bigram 'clean water' in vocabulary, got %v", v.Vocabulary)
	}
	if _, ok := v.Vocabulary["need clean"]; !ok {
		t.Fatalf("expected bigram 'need clean' in vocabulary, got %v", v.Vocabulary)
	}
}

func TestFit_MaxDFPrunes(t *testing.T) {
	docs := []string{
		"water help",
		"water food",
		"water shelter",
		"water medicine",
	}
	// "water" appears in 4/4 documents; at max_df=0.5 it must go.
	v := NewCountVectorizer(splitTokenizer, 1, 0.5)
	if err := v.Fit(docs); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if _, ok := v.Vocabulary["water"]; ok {
		t.Fatal("expected 'water' to be pruned at max_df=0.5")
	}
	if len(v.Vocabulary) != 4 {
		t.Fatalf("expected 4 remaining terms, got %d: %v", len(v.Vocabulary), v.Vocabulary)
	}
}

func TestFit_AllPrunedIsError(t *testing.T) {
	docs := []string{"water", "water", "water"}
	v := NewCountVectorizer(splitTokenizer, 1, 0.1)
	if err := v.Fit(docs); err == nil {
		t.Fatal("expected error when pruning empties the vocabulary")
	}
}

func TestTransform_IgnoresUnseenTerms(t *testing.T) {
	v := NewCountVectorizer(splitTokenizer, 1, 1.0)
	if err := v.Fit([]string{"water food"}); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	m, err := v.Transform([]string{"water earthquake rescue"})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	indices, values := m.Row(0)
	if len(indices) != 1 {
		t.Fatalf("expected 1 known term, got indices %v", indices)
	}
	if indices[0] != v.Vocabulary["water"] || values[0] != 1 {
		t.Fatalf("expected a single 'water' count, got indices %v values %v", indices, values)
	}
}

func TestTransform_EmptyDocument(t *testing.T) {
	v := NewCountVectorizer(splitTokenizer, 1, 1.0)
	if err := v.Fit([]string{"water food"}); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	m, err := v.Transform([]string{""})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if indices, _ := m.Row(0); len(indices) != 0 {
		t.Fatalf("expected all-zero row for empty document, got %v", indices)
	}
}

func TestTransform_BeforeFit(t *testing.T) {
	v := NewCountVectorizer(splitTokenizer, 1, 1.0)
	if _, err := v.Transform([]string{"water"}); err == nil {
		t.Fatal("expected error for transform before fit")
	}
}
