package feature

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// TokenizeFunc converts one raw document into its token sequence.
type TokenizeFunc func(string) []string

// CountVectorizer turns documents into term-count rows over a fixed
// vocabulary of token n-grams. Fit builds the vocabulary from the
// training documents in alphabetical order, dropping terms whose
// document frequency proportion exceeds MaxDF; Transform counts
// vocabulary terms and ignores everything else.
type CountVectorizer struct {
	NGramMax   int
	MaxDF      float64
	Vocabulary map[string]int

	tokenize TokenizeFunc
}

// NewCountVectorizer creates an unfit vectorizer. ngramMax of 1 keeps
// unigrams only; 2 adds bigrams, and so on. maxDF is a proportion in
// (0, 1].
func NewCountVectorizer(tokenize TokenizeFunc, ngramMax int, maxDF float64) *CountVectorizer {
	return &CountVectorizer{
		NGramMax: ngramMax,
		MaxDF:    maxDF,
		tokenize: tokenize,
	}
}

// Fit builds the vocabulary from docs.
func (v *CountVectorizer) Fit(docs []string) error {
	_, err := v.FitTransform(docs)
	return err
}

// FitTransform builds the vocabulary from docs and returns their count
// matrix, tokenizing each document only once.
func (v *CountVectorizer) FitTransform(docs []string) (*Matrix, error) {
	terms := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		terms[i] = v.ngrams(v.tokenize(doc))
		for _, term := range uniqueTerms(terms[i]) {
			df[term]++
		}
	}

	// max_df prunes terms that appear in more than MaxDF of the
	// documents; everything else enters the vocabulary alphabetically.
	limit := v.MaxDF * float64(len(docs))
	kept := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count) <= limit {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil, errors.Errorf("countvec: no terms remain after pruning at max_df=%g", v.MaxDF)
	}
	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	for i, term := range kept {
		v.Vocabulary[term] = i
	}

	m := NewMatrix(len(v.Vocabulary))
	for _, docTerms := range terms {
		indices, values := v.countRow(docTerms)
		m.AppendRow(indices, values)
	}
	return m, nil
}

// Transform counts vocabulary terms in docs. The vectorizer must have
// been fit (or restored from a saved model) first.
func (v *CountVectorizer) Transform(docs []string) (*Matrix, error) {
	if v.Vocabulary == nil {
		return nil, errors.New("countvec: transform before fit")
	}
	m := NewMatrix(len(v.Vocabulary))
	for _, doc := range docs {
		indices, values := v.countRow(v.ngrams(v.tokenize(doc)))
		m.AppendRow(indices, values)
	}
	return m, nil
}

// SetTokenizer re-attaches the tokenizer after the vectorizer has been
// restored from a saved model, where only the vocabulary survives.
func (v *CountVectorizer) SetTokenizer(tokenize TokenizeFunc) {
	v.tokenize = tokenize
}

// countRow maps one document's terms onto vocabulary counts, returning
// a sparse row sorted by column index.
func (v *CountVectorizer) countRow(docTerms []string) (indices []int, values []float64) {
	counts := make(map[int]float64)
	for _, term := range docTerms {
		if j, ok := v.Vocabulary[term]; ok {
			counts[j]++
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}
	indices = make([]int, 0, len(counts))
	for j := range counts {
		indices = append(indices, j)
	}
	sort.Ints(indices)
	values = make([]float64, len(indices))
	for k, j := range indices {
		values[k] = counts[j]
	}
	return indices, values
}

// ngrams expands tokens into all n-grams from length 1 to NGramMax,
// joining multi-token grams with a single space.
func (v *CountVectorizer) ngrams(tokens []string) []string {
	if v.NGramMax <= 1 {
		return tokens
	}
	grams := make([]string, 0, len(tokens)*v.NGramMax)
	grams = append(grams, tokens...)
	for n := 2; n <= v.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0:0]
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
