package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCommand(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "posting.html", "<html><body><script>x()</script><p>"+flaskJob+"</p></body></html>")
	outDir := filepath.Join(dir, "out")

	out, err := runCLI(t, "ingest", "-i", in, "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "posting.txt")

	text, err := os.ReadFile(filepath.Join(outDir, "posting.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "Flask")
	assert.NotContains(t, string(text), "x()")

	var meta ingestion.Metadata
	require.NoError(t, readJSON(filepath.Join(outDir, "posting.meta.json"), &meta))
	assert.Equal(t, ingestion.FormatHTML, meta.Format)
	assert.Equal(t, ingestion.ContentHash(string(text)), meta.Hash)
}

func TestIngestCommand_Errors(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, err := runCLI(t, "ingest", "-i", writeFile(t, dir, "blank.md", "  \n"), "-o", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text")

	_, err = runCLI(t, "ingest", "-i", writeFile(t, dir, "image.png", "x"), "-o", dir)
	require.Error(t, err)

	_, err = runCLI(t, "ingest", "-o", dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "required"))
}
