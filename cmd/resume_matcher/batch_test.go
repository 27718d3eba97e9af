package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resume.md", "# Resume\n\n"+flaskResume)
	path := writeFile(t, dir, "manifest.json", `[
		{"id": "inline", "resume": "Go and Docker", "job_description": "Go developer"},
		{"resume_file": "resume.md", "job_description": "Flask role"}
	]`)

	pairs, err := loadManifest(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "inline", pairs[0].ID)
	assert.Equal(t, "2", pairs[1].ID)
	assert.Contains(t, pairs[1].Resume, "Flask")
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{"invalid json", `{"id": 1`, "failed to parse manifest"},
		{"inline and file", `[{"resume": "x", "resume_file": "r.txt", "job_description": "y"}]`, "both inline text and a file"},
		{"missing file", `[{"resume": "x", "job_file": "missing.txt"}]`, "job description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "manifest.json", tt.manifest)
			_, err := loadManifest(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBatchCommand(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "job.txt", flaskJob)
	manifest := writeFile(t, dir, "manifest.json", `[
		{"id": "flask", "resume": "`+flaskResume+`", "job_file": "job.txt"},
		{"id": "empty", "resume": "  ", "job_description": "Go developer"},
		{"id": "pottery", "resume": "Pottery and ceramics artisan", "job_description": "Quantum circuit design engineer"}
	]`)

	out, err := runCLI(t, "batch", "-m", manifest, "--concurrency", "2")
	require.NoError(t, err)

	var items []batchItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 3)

	assert.Equal(t, "flask", items[0].ID)
	require.NotNil(t, items[0].Result)
	assert.Empty(t, items[0].Error)

	assert.Equal(t, "empty", items[1].ID)
	assert.Nil(t, items[1].Result)
	assert.NotEmpty(t, items[1].Error)

	assert.Equal(t, "pottery", items[2].ID)
	require.NotNil(t, items[2].Result)
	assert.Equal(t, 20.0, items[2].Result.OverallScore)
	assert.Equal(t, "poor", items[2].Result.ScoreCategory)
}
