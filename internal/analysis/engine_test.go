package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/recommend"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	flaskResume = "Skills: Python, Flask, AWS. Experience: 5 years of backend development."
	flaskJob    = "We need a Python developer with Flask and AWS experience."
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(taxonomy.Default(), DefaultOptions(), nil)
	require.NoError(t, err)
	return e
}

func findMatch(matches []types.SkillMatch, skill string) (types.SkillMatch, bool) {
	for _, m := range matches {
		if m.Skill == skill {
			return m, true
		}
	}
	return types.SkillMatch{}, false
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, DefaultOptions(), nil)
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.Weights.Technical = 0.9
	_, err = New(taxonomy.Default(), opts, nil)
	var wErr *scoring.WeightsError
	assert.True(t, errors.As(err, &wErr))

	opts = DefaultOptions()
	opts.ApproximateCredit = 1.5
	_, err = New(taxonomy.Default(), opts, nil)
	assert.Error(t, err)
}

func TestAnalyze_PythonFlaskAWS(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Analyze(flaskResume, flaskJob)
	require.NoError(t, err)

	python, ok := findMatch(result.MatchedSkills, "python")
	require.True(t, ok, "python should be matched")
	assert.Equal(t, types.MatchExact, python.Kind)
	assert.Contains(t, python.JobForms, "flask", "flask is resolved through the python synonym group")

	cloud, ok := findMatch(result.MatchedSkills, "cloud")
	require.True(t, ok, "aws should be matched as cloud")
	assert.Contains(t, cloud.JobForms, "aws")

	for _, m := range result.MissingSkills {
		assert.NotEqual(t, types.CategoryTechnical, m.Category, "no technical skill should be missing: %s", m.Skill)
	}

	assert.Equal(t, 100.0, result.CategoryScores.Technical)
	assert.Equal(t, 100.0, result.CategoryScores.Experience)
	assert.Equal(t, 100.0, result.CategoryScores.Education)
	assert.Greater(t, result.ContentSimilarity, 0.0)
	assert.GreaterOrEqual(t, result.OverallScore, 60.0)
	assert.Equal(t, "good", result.ScoreCategory)
	assert.Equal(t, 5, result.Experience.ResumeYears)
	assert.Equal(t, "mid", result.Experience.ResumeLevel)
	assert.False(t, result.Partial)
	assert.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Summary, "2 of 2 required skills")
}

func TestAnalyze_NoSharedTokens(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Analyze("Pottery and ceramics artisan", "Quantum circuit design engineer")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.ContentSimilarity)
	assert.Equal(t, 0.0, result.CategoryScores.Technical)
	assert.Equal(t, 0.0, result.CategoryScores.SoftSkills)
	assert.Empty(t, result.MatchedSkills)
	assert.Less(t, result.OverallScore, 40.0)
	assert.Equal(t, "poor", result.ScoreCategory)
}

func TestAnalyze_LogsExtractedSignals(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e, err := New(taxonomy.Default(), DefaultOptions(), logger)
	require.NoError(t, err)

	_, err = e.Analyze(flaskResume, flaskJob)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "signals extracted")
	assert.Contains(t, out, "[python cloud]")
	assert.Contains(t, out, "job_mentions=3")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		resume    string
		job       string
		wantRoles []types.DocumentRole
	}{
		{"empty resume", "", flaskJob, []types.DocumentRole{types.RoleResume}},
		{"whitespace job", flaskResume, " \n\t ", []types.DocumentRole{types.RoleJobDescription}},
		{"both empty", "", "   ", []types.DocumentRole{types.RoleResume, types.RoleJobDescription}},
		{"both present", flaskResume, flaskJob, nil},
		{"punctuation only is not empty", "...", "!!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Analyze(tt.resume, tt.job)
			var emptyErr *EmptyInputError
			if tt.wantRoles == nil {
				require.NoError(t, err)
				assert.NotNil(t, result)
				return
			}
			require.True(t, errors.As(err, &emptyErr))
			assert.Equal(t, tt.wantRoles, emptyErr.Roles)
			assert.Nil(t, result)
		})
	}
}

func TestAnalyze_DegenerateSimilarity(t *testing.T) {
	e := newTestEngine(t)

	// Every token is a stopword or too short.
	result, err := e.Analyze("I am a go to", "We need a Python developer")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.ContentSimilarity)
	assert.False(t, result.Partial, "degenerate similarity is recovered silently")
	require.Len(t, result.MissingSkills, 1)
	assert.Equal(t, "python", result.MissingSkills[0].Skill)
}

func TestAnalyze_Ranges(t *testing.T) {
	e := newTestEngine(t)
	pairs := [][2]string{
		{flaskResume, flaskJob},
		{"Pottery and ceramics artisan", "Quantum circuit design engineer"},
		{"x", "y"},
		{strings.Repeat("python aws docker leadership ", 400), "Senior Python engineer, 10+ years of experience, PhD required."},
		{"Certified scrum master. 1 year in retail.", "Master's degree and 8 years of experience in Java, Kubernetes and SQL. Strong communication."},
	}

	for i, p := range pairs {
		t.Run(fmt.Sprintf("pair %d", i), func(t *testing.T) {
			result, err := e.Analyze(p[0], p[1])
			require.NoError(t, err)

			for name, v := range map[string]float64{
				"overall":    result.OverallScore,
				"similarity": result.ContentSimilarity,
				"technical":  result.CategoryScores.Technical,
				"soft":       result.CategoryScores.SoftSkills,
				"experience": result.CategoryScores.Experience,
				"education":  result.CategoryScores.Education,
				"ats":        result.CategoryScores.ATSCompatibility,
			} {
				assert.GreaterOrEqual(t, v, 0.0, name)
				assert.LessOrEqual(t, v, 100.0, name)
			}
			assert.LessOrEqual(t, len(result.Recommendations), recommend.DefaultMaxRecommendations)
		})
	}
}

func TestAnalyze_PartitionInvariant(t *testing.T) {
	e := newTestEngine(t)
	resume := "Go lang and PostgreSQL services on Kubernetes. Mentored engineers. Strong communication."
	job := "Golang, Postgres, Docker, Kafka, React and AWS. Leadership, teamwork and communication. Agile."

	result, err := e.Analyze(resume, job)
	require.NoError(t, err)

	required := map[string]bool{}
	for _, o := range result.KeywordAnalysis.JobTechnical {
		required[string(types.CategoryTechnical)+":"+o.Name] = true
	}
	for _, o := range result.KeywordAnalysis.JobSoft {
		required[string(types.CategorySoft)+":"+o.Name] = true
	}

	seen := map[string]int{}
	for _, m := range result.SkillMatches() {
		seen[string(m.Category)+":"+m.Skill]++
	}
	assert.Len(t, seen, len(required))
	for key := range required {
		assert.Equal(t, 1, seen[key], key)
	}
	for _, m := range result.MatchedSkills {
		assert.NotEqual(t, types.MatchMissing, m.Kind)
	}
	for _, m := range result.MissingSkills {
		assert.Equal(t, types.MatchMissing, m.Kind)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	resume := "Led a team building React and Node.js apps. 6 years of experience. B.S. in CS. Docker, AWS, SQL."
	job := "Frontend engineer: React, TypeScript, GraphQL, AWS. 5+ years experience. Bachelor's degree. Teamwork."

	first, err := e.Analyze(resume, job)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.Analyze(resume, job)
		require.NoError(t, err)
		again.Timestamp = first.Timestamp
		assert.Equal(t, first, again)
	}
}

func TestAnalyze_Monotonic(t *testing.T) {
	e := newTestEngine(t)
	job := "Python, Rust, Docker and AWS engineer"
	resume := "Docker engineer."

	previous := -1.0
	for _, addition := range []string{"", " Python.", " Python again.", " Rust.", " AWS."} {
		resume += addition
		result, err := e.Analyze(resume, job)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.CategoryScores.Technical, previous, "after adding %q", addition)
		previous = result.CategoryScores.Technical
	}
	assert.Equal(t, 100.0, previous)
}

func TestAnalyze_ExactPrecedence(t *testing.T) {
	// mysql and mssql are separate skills one edit apart (ratio 90), so the
	// resume always carries an approximate candidate for a mysql requirement.
	tax, err := taxonomy.New([]taxonomy.Entry{
		{Canonical: "mssql", Category: types.CategoryTechnical, Aliases: []string{"sql server"}},
		{Canonical: "mysql", Category: types.CategoryTechnical},
	})
	require.NoError(t, err)
	e, err := New(tax, DefaultOptions(), nil)
	require.NoError(t, err)

	t.Run("approximate candidate alone", func(t *testing.T) {
		result, err := e.Analyze("Administered MSSQL clusters.", "MySQL administrator wanted.")
		require.NoError(t, err)

		m, ok := findMatch(result.MatchedSkills, "mysql")
		require.True(t, ok)
		assert.Equal(t, types.MatchApproximate, m.Kind)
		assert.Equal(t, "mssql", m.MatchedAs)
		assert.Equal(t, 90.0, m.Similarity)
	})

	t.Run("exact wins over earlier approximate candidate", func(t *testing.T) {
		result, err := e.Analyze("Administered MSSQL clusters, later MySQL.", "MySQL administrator wanted.")
		require.NoError(t, err)

		m, ok := findMatch(result.MatchedSkills, "mysql")
		require.True(t, ok)
		assert.Equal(t, types.MatchExact, m.Kind)
		assert.Equal(t, "mysql", m.MatchedAs)
		assert.Zero(t, m.Similarity)
		assert.Equal(t, 100.0, result.CategoryScores.Technical)
	})
}

func TestAnalyze_AliasPrefixOfLongerWord(t *testing.T) {
	e := newTestEngine(t)

	// "team player" fails its boundary in "players"; the shorter alias
	// "team" still registers teamwork on the job side.
	result, err := e.Analyze("Teamwork and collaboration across squads.", "We want strong team players.")
	require.NoError(t, err)

	m, ok := findMatch(result.MatchedSkills, "teamwork")
	require.True(t, ok)
	assert.Equal(t, types.MatchExact, m.Kind)
	assert.Equal(t, types.CategorySoft, m.Category)
	assert.Equal(t, 100.0, result.CategoryScores.SoftSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestAnalyze_PartialOnOptionalStageFailure(t *testing.T) {
	e := newTestEngine(t)
	e.recommend = func(recommend.Input, recommend.Options) []types.Recommendation {
		panic("template missing")
	}

	result, err := e.Analyze(flaskResume, flaskJob)
	require.NoError(t, err)

	assert.True(t, result.Partial)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "recommendations")
	assert.Empty(t, result.Recommendations)
	assert.GreaterOrEqual(t, result.OverallScore, 60.0, "scores survive an optional stage failure")
}

func TestAnalyze_SimilarityFailureIsPartial(t *testing.T) {
	e := newTestEngine(t)
	e.similarity = func(_, _ []string) (float64, error) {
		return 0, errors.New("vector overflow")
	}

	result, err := e.Analyze(flaskResume, flaskJob)
	require.NoError(t, err)
	assert.True(t, result.Partial)
	assert.Equal(t, 0.0, result.ContentSimilarity)
}

func TestAnalyze_CoreFaultIsAnalysisFailed(t *testing.T) {
	e := newTestEngine(t)
	e.similarity = func(_, _ []string) (float64, error) {
		panic("corrupted vocabulary")
	}

	result, err := e.Analyze(flaskResume, flaskJob)
	assert.Nil(t, result)

	var failed *AnalysisFailedError
	require.True(t, errors.As(err, &failed))
	assert.Contains(t, failed.Cause.Error(), "corrupted vocabulary")
}

func TestAnalyze_Timestamp(t *testing.T) {
	e := newTestEngine(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	e.now = func() time.Time { return fixed }

	result, err := e.Analyze(flaskResume, flaskJob)
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), result.Timestamp)
}

func TestAnalyze_Lemmatize(t *testing.T) {
	opts := DefaultOptions()
	opts.Lemmatize = true
	e, err := New(taxonomy.Default(), opts, nil)
	require.NoError(t, err)

	plain := newTestEngine(t)
	resume := "Managed deployments and designed services"
	job := "Managing deployment, designing service"

	stemmed, err := e.Analyze(resume, job)
	require.NoError(t, err)
	unstemmed, err := plain.Analyze(resume, job)
	require.NoError(t, err)

	assert.Greater(t, stemmed.ContentSimilarity, unstemmed.ContentSimilarity)
}

func TestSummarize(t *testing.T) {
	r := &types.AnalysisResult{
		OverallScore:  45,
		ScoreCategory: "fair",
		MatchedSkills: []types.SkillMatch{{Skill: "python", Kind: types.MatchExact}},
		MissingSkills: []types.SkillMatch{
			{Skill: "rust", Importance: 0.3},
			{Skill: "cloud", Importance: 1.0},
			{Skill: "devops", Importance: 0.6},
			{Skill: "testing", Importance: 0.1},
		},
	}

	s := summarize(r)
	assert.True(t, strings.HasPrefix(s, "Fair match (45.0/100)."))
	assert.Contains(t, s, "1 of 5 required skills")
	assert.Contains(t, s, "Most important missing: cloud, devops, rust.")

	empty := summarize(&types.AnalysisResult{ScoreCategory: "poor"})
	assert.Contains(t, empty, "No recognizable skills")
}
