package nlp

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Lemmatizer reduces a word to its dictionary base form. Like a
// WordNet lemmatizer called with its default part of speech, it only
// performs noun reduction: plural suffixes are rewritten by rule and
// irregular plurals come from the inflection tables. Construction has
// no network or process-global side effects; all lexical resources are
// compiled in.
type Lemmatizer struct {
	overrides map[string]string
}

// overrideForms lists words the generic suffix rules would mangle.
// Lookup is case-insensitive; the stored form wins.
var overrideForms = map[string]string{
	"sos":     "sos",
	"gas":     "gas",
	"news":    "news",
	"debris":  "debris",
	"measles": "measles",
	"cholera": "cholera",
}

// NewLemmatizer builds a Lemmatizer from the embedded exception tables.
func NewLemmatizer() *Lemmatizer {
	return &Lemmatizer{overrides: overrideForms}
}

// Lemma returns the base form of word. Words with no known reduction
// come back unchanged, and a reduction that would erase the word
// entirely is discarded.
func (l *Lemmatizer) Lemma(word string) string {
	if word == "" {
		return word
	}
	if base, ok := l.overrides[strings.ToLower(word)]; ok {
		return base
	}
	base := inflection.Singular(word)
	if base == "" {
		return word
	}
	return base
}
