package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "drops stopwords and short tokens",
			input:    "we need a python developer with flask and aws experience.",
			expected: []string{"need", "python", "developer", "flask", "aws", "experience"},
		},
		{
			name:     "splits on punctuation and digits",
			input:    "skills: python, flask, aws. 5 years",
			expected: []string{"skills", "python", "flask", "aws", "years"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only stopwords",
			input:    "the and of to",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "Cafe resume naive", FoldDiacritics("Café résumé naïve"))
	assert.Equal(t, "plain", FoldDiacritics("plain"))
}

func TestLower(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"Café Résumé", "cafe resume"},
		{"Master\u2019s Degree", "master's degree"},
		{"\u2018Bachelor\u2019s\u2019", "'bachelor's'"},
		{"already plain", "already plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lower(tt.in))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Built", "APIs.", "c++/c#"}, Words("  Built\tAPIs.\n c++/c# "))
	assert.Empty(t, Words(" \n "))
}

func TestPlainNormalizer(t *testing.T) {
	n := New(Options{})
	require.False(t, n.Lemmatizes())

	got := n.Normalize("Managed C++ and Node.js Services")
	assert.Equal(t, "managed c++ and node.js services", got.Raw)
	assert.Equal(t, []string{"managed", "node", "services"}, got.Tokens)
	assert.False(t, got.Empty())
}

func TestStemmingNormalizer(t *testing.T) {
	n := New(Options{Lemmatize: true})
	require.True(t, n.Lemmatizes())

	got := n.Normalize("Managing managed services")
	assert.Equal(t, "managing managed services", got.Raw)
	require.Len(t, got.Tokens, 3)
	assert.Equal(t, got.Tokens[0], got.Tokens[1], "inflections should share a stem")
	assert.Equal(t, "manag", got.Tokens[0])
	assert.Equal(t, "servic", got.Tokens[2])
}

func TestNormalize_Empty(t *testing.T) {
	for _, n := range []Normalizer{New(Options{}), New(Options{Lemmatize: true})} {
		got := n.Normalize("   ")
		assert.True(t, got.Empty())
		assert.Empty(t, got.Tokens)
	}
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.False(t, IsStopword("python"))
}
