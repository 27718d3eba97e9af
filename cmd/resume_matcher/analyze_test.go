package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand_MissingFlags(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "analyze", "--resume", "resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	job := writeFile(t, dir, "job.txt", flaskJob)

	_, err := runCLI(t, "analyze", "--resume", filepath.Join(dir, "nope.txt"), "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", flaskResume)
	job := writeFile(t, dir, "job.html", "<html><body><p>"+flaskJob+"</p></body></html>")

	out, err := runCLI(t, "analyze", "-r", resume, "-j", job, "--json", "--validate")
	require.NoError(t, err)

	var got types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	// Same score as analyzing the ingested texts directly
	resumeText, _, err := ingestion.IngestFromFile(resume)
	require.NoError(t, err)
	jobText, _, err := ingestion.IngestFromFile(job)
	require.NoError(t, err)
	cfg, err := resolveConfig()
	require.NoError(t, err)
	engine, err := newEngine(cfg, nil)
	require.NoError(t, err)
	want, err := engine.Analyze(resumeText, jobText)
	require.NoError(t, err)

	assert.Equal(t, want.OverallScore, got.OverallScore)
	assert.Equal(t, want.ScoreCategory, got.ScoreCategory)
	assert.Empty(t, got.ID, "unsaved analyses have no id")
}

func TestAnalyzeCommand_HumanOutput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", flaskResume)
	job := writeFile(t, dir, "job.txt", flaskJob)

	out, err := runCLI(t, "analyze", "-r", resume, "-j", job)
	require.NoError(t, err)
	assert.Contains(t, out, "MATCH SCORE")
	assert.NotContains(t, out, "GAPS AND STRENGTHS")

	out, err = runCLI(t, "analyze", "-r", resume, "-j", job, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "SKILLS")
}

func TestAnalyzeCommand_EmptyInput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "   \n\t ")
	job := writeFile(t, dir, "job.txt", flaskJob)

	_, err := runCLI(t, "analyze", "-r", resume, "-j", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestAnalyzeCommand_SaveAndHistory(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "history.db"))
	resume := writeFile(t, dir, "backend_resume.txt", flaskResume)
	job := writeFile(t, dir, "job.txt", flaskJob)
	outPath := filepath.Join(dir, "out", "result.json")

	out, err := runCLI(t, "analyze", "-r", resume, "-j", job, "--save", "--job-title", "Flask Developer", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote analysis to")

	var saved types.AnalysisResult
	require.NoError(t, readJSON(outPath, &saved))
	require.NotEmpty(t, saved.ID)

	out, err = runCLI(t, "history", "list", "--json")
	require.NoError(t, err)
	var summaries []db.AnalysisSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, saved.ID, summaries[0].ID)
	assert.Equal(t, "backend_resume", summaries[0].ResumeTitle)
	assert.Equal(t, "Flask Developer", summaries[0].JobTitle)

	out, err = runCLI(t, "history", "list", "--category", "excellent", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	out, err = runCLI(t, "history", "show", saved.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "backend_resume vs Flask Developer")
	assert.Contains(t, out, "MATCH SCORE")

	out, err = runCLI(t, "history", "summary", "--json")
	require.NoError(t, err)
	var summary db.DashboardSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.TotalAnalyses)
	assert.Equal(t, saved.OverallScore, summary.AverageScore)

	_, err = runCLI(t, "history", "show", "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHistoryCommand_RequiresStore(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "history", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store is required")
}

func TestTitleOrFileName(t *testing.T) {
	assert.Equal(t, "Given", titleOrFileName("Given", "/tmp/resume.pdf"))
	assert.Equal(t, "resume", titleOrFileName("  ", "/tmp/resume.pdf"))
}
