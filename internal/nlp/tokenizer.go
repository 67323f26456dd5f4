package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer normalizes raw message text into clean lexical tokens.
// The steps are order-sensitive: strip every non-word, non-space
// character, split into words, lemmatize each word to its base form,
// lowercase, and trim. An empty message yields a nil token slice;
// downstream vectorization tolerates that.
type Tokenizer struct {
	lemmatizer *Lemmatizer
}

// NewTokenizer creates a Tokenizer with the embedded lemmatizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{lemmatizer: NewLemmatizer()}
}

// Tokenize converts one raw message into its normalized token sequence.
func (t *Tokenizer) Tokenize(text string) []string {
	text = stripNonWord(norm.NFC.String(text))

	var tokens []string
	for _, word := range strings.Fields(text) {
		tok := strings.TrimSpace(strings.ToLower(t.lemmatizer.Lemma(word)))
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// stripNonWord removes every rune that is neither a word character
// (letter, digit, underscore) nor whitespace. NFC normalization runs
// first so accented letters survive as single word runes instead of
// being split into a letter plus a stripped combining mark.
func stripNonWord(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isWordRune(r) || isWhitespace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
