// Package textnorm turns raw document text into the views the extractor and
// the similarity scorer consume.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLength is the shortest token kept in the cleaned view (exclusive).
const minTokenLength = 2

// Normalized holds both views of one document.
type Normalized struct {
	// Raw is the lowercased, diacritic-folded text with punctuation intact,
	// used for pattern scanning.
	Raw string
	// Tokens are lowercase alphabetic tokens longer than two characters with
	// stopwords removed, used for similarity vectors.
	Tokens []string
}

// Empty reports whether the cleaned view has no tokens.
func (n Normalized) Empty() bool {
	return len(n.Tokens) == 0
}

// Normalizer produces the raw and cleaned views of a document.
type Normalizer interface {
	Normalize(text string) Normalized
	// Lemmatizes reports whether tokens are reduced to their stems.
	Lemmatizes() bool
}

// Options selects normalizer capabilities at construction time.
type Options struct {
	Lemmatize bool
}

// New returns the normalizer selected by opts.
func New(opts Options) Normalizer {
	if opts.Lemmatize {
		return stemmingNormalizer{}
	}
	return plainNormalizer{}
}

type plainNormalizer struct{}

func (plainNormalizer) Normalize(text string) Normalized {
	raw := Lower(text)
	return Normalized{Raw: raw, Tokens: Tokenize(raw)}
}

func (plainNormalizer) Lemmatizes() bool { return false }

type stemmingNormalizer struct{}

func (stemmingNormalizer) Normalize(text string) Normalized {
	raw := Lower(text)
	tokens := Tokenize(raw)
	for i, tok := range tokens {
		tokens[i] = english.Stem(tok, false)
	}
	return Normalized{Raw: raw, Tokens: tokens}
}

func (stemmingNormalizer) Lemmatizes() bool { return true }

// quoteFolder maps typographic single quotes, common in PDF and DOCX text,
// to the ASCII apostrophe.
var quoteFolder = strings.NewReplacer("\u2018", "'", "\u2019", "'")

// Lower lowercases text, folds diacritics ("Café" -> "cafe") and folds
// curly apostrophes ("Master’s" -> "master's").
func Lower(text string) string {
	return strings.ToLower(quoteFolder.Replace(FoldDiacritics(text)))
}

// FoldDiacritics strips combining marks after canonical decomposition.
func FoldDiacritics(text string) string {
	if isASCII(text) {
		return text
	}
	// Transformers carry state, so one chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// Tokenize splits already-lowercased text on non-letters and drops short
// tokens and stopwords. Order is preserved.
func Tokenize(lowered string) []string {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= minTokenLength {
			continue
		}
		if IsStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Words splits text on whitespace. It is the word count basis for text metrics.
func Words(text string) []string {
	return strings.Fields(text)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
