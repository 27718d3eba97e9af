package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_ToJSON(t *testing.T) {
	metadata := &Metadata{
		Source:    "resume.pdf",
		Format:    FormatPDF,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Words:     42,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
}

func TestContentHash(t *testing.T) {
	hash1 := ContentHash("test content")
	hash2 := ContentHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, ContentHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	metadata := NewMetadata("three word text", "job.txt")

	assert.Equal(t, "job.txt", metadata.Source)
	assert.Equal(t, 3, metadata.Words)
	ts, err := time.Parse(time.RFC3339, metadata.Timestamp)
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
}
