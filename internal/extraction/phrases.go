package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MaxKeyPhrases caps the number of key phrases returned
const MaxKeyPhrases = 15

var keyPhrasePattern = regexp.MustCompile(
	`\b(?:developed|designed|implemented|built|created|led|managed|improved|increased|reduced|launched|delivered|architected|optimized|automated|migrated|maintained|deployed)` +
		`(?:\s+[a-z0-9+#/\-]+){1,4}`)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// KeyPhrases returns distinct action-verb phrases in order of appearance,
// at most limit of them.
func KeyPhrases(raw string, limit int) []string {
	phrases := []string{}
	if limit <= 0 {
		return phrases
	}
	seen := make(map[string]bool)
	for _, m := range keyPhrasePattern.FindAllString(raw, -1) {
		phrase := strings.Join(strings.Fields(m), " ")
		if seen[phrase] {
			continue
		}
		seen[phrase] = true
		phrases = append(phrases, phrase)
		if len(phrases) == limit {
			break
		}
	}
	return phrases
}

// Metrics measures the size of a document.
func Metrics(text string) types.TextMetrics {
	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	return types.TextMetrics{
		Length:        utf8.RuneCountInString(text),
		WordCount:     len(textnorm.Words(text)),
		SentenceCount: sentences,
	}
}
