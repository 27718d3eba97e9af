// Package analysis implements the resume to job description matching engine.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/recommend"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Options configures an Engine
type Options struct {
	Weights           scoring.Weights
	ApproximateCredit float64
	Lemmatize         bool
	MaxKeyPhrases     int
	Matcher           matching.Options
	Recommend         recommend.Options
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		Weights:           scoring.DefaultWeights(),
		ApproximateCredit: scoring.DefaultApproximateCredit,
		MaxKeyPhrases:     extraction.MaxKeyPhrases,
		Matcher:           matching.DefaultOptions(),
	}
}

// Engine analyzes resume and job description pairs. It holds only immutable
// configuration and is safe for concurrent use.
type Engine struct {
	normalizer  textnorm.Normalizer
	extractor   *extraction.Extractor
	matcher     *matching.Matcher
	descriptors []scoring.CategoryDescriptor
	opts        Options
	logger      *slog.Logger

	now        func() time.Time
	similarity func(resume, job []string) (float64, error)
	recommend  func(recommend.Input, recommend.Options) []types.Recommendation
}

// New builds an Engine around an already loaded taxonomy.
// A nil logger uses slog.Default().
func New(tax *taxonomy.Taxonomy, opts Options, logger *slog.Logger) (*Engine, error) {
	if tax == nil {
		return nil, &AnalysisFailedError{Message: "taxonomy is required"}
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if opts.ApproximateCredit < 0 || opts.ApproximateCredit > 1 {
		return nil, fmt.Errorf("approximate credit must be within [0,1], got %g", opts.ApproximateCredit)
	}
	if opts.MaxKeyPhrases <= 0 {
		opts.MaxKeyPhrases = extraction.MaxKeyPhrases
	}
	if logger == nil {
		logger = slog.Default()
	}

	extractor, err := extraction.New(tax)
	if err != nil {
		return nil, &AnalysisFailedError{Message: "failed to build skill extractor", Cause: err}
	}

	return &Engine{
		normalizer:  textnorm.New(textnorm.Options{Lemmatize: opts.Lemmatize}),
		extractor:   extractor,
		matcher:     matching.New(tax, opts.Matcher),
		descriptors: scoring.Descriptors(opts.Weights, opts.ApproximateCredit),
		opts:        opts,
		logger:      logger,
		now:         time.Now,
		similarity:  scoring.ContentSimilarity,
		recommend:   recommend.Generate,
	}, nil
}

// Analyze matches resumeText against jobText.
//
// It fails with *EmptyInputError when either text is empty or
// whitespace-only, and with *AnalysisFailedError when an internal fault
// prevents any result. Faults in optional stages yield a result with
// Partial set instead.
func (e *Engine) Analyze(resumeText, jobText string) (result *types.AnalysisResult, err error) {
	var empty []types.DocumentRole
	for _, doc := range []types.Document{
		{Role: types.RoleResume, Text: resumeText},
		{Role: types.RoleJobDescription, Text: jobText},
	} {
		if strings.TrimSpace(doc.Text) == "" {
			empty = append(empty, doc.Role)
		}
	}
	if len(empty) > 0 {
		return nil, &EmptyInputError{Roles: empty}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("analysis panicked", "panic", r)
			result = nil
			err = &AnalysisFailedError{Message: "internal fault", Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	return e.analyze(resumeText, jobText), nil
}

func (e *Engine) analyze(resumeText, jobText string) *types.AnalysisResult {
	resumeDoc := e.normalizer.Normalize(resumeText)
	jobDoc := e.normalizer.Normalize(jobText)
	resumeSignals := e.extractor.Extract(resumeDoc)
	jobSignals := e.extractor.Extract(jobDoc)
	e.logger.Debug("signals extracted",
		"resume_skills", append(resumeSignals.Technical.Names(), resumeSignals.Soft.Names()...),
		"job_skills", append(jobSignals.Technical.Names(), jobSignals.Soft.Names()...),
		"job_mentions", jobSignals.Technical.Total()+jobSignals.Soft.Total())

	result := &types.AnalysisResult{Timestamp: e.now().UTC()}

	var matches []types.SkillMatch
	for _, d := range e.descriptors {
		matches = append(matches, e.matcher.Match(d.Category, resumeSignals.Skills(d.Category), jobSignals.Skills(d.Category))...)
	}

	scores := types.CategoryScores{
		Experience: scoring.ExperienceScore(resumeSignals.Years, jobSignals.Years),
		Education:  scoring.EducationScore(resumeSignals.Education, jobSignals.Education),
	}
	for _, d := range e.descriptors {
		switch d.Category {
		case types.CategoryTechnical:
			scores.Technical = d.Score(matches)
		case types.CategorySoft:
			scores.SoftSkills = d.Score(matches)
		}
	}

	similarity, err := e.similarity(resumeDoc.Tokens, jobDoc.Tokens)
	if err != nil {
		var degenerate *scoring.DegenerateSimilarityError
		if errors.As(err, &degenerate) {
			e.logger.Debug("content similarity degenerate, using 0",
				"resume_tokens", degenerate.ResumeTokens, "job_tokens", degenerate.JobTokens)
		} else {
			e.logger.Warn("content similarity failed, using 0", "error", err)
			result.Partial = true
			result.Warnings = append(result.Warnings, fmt.Sprintf("content similarity unavailable: %v", err))
		}
		similarity = 0
	}

	result.TextMetrics = extraction.Metrics(resumeText)
	density := scoring.KeywordDensity(matches, result.TextMetrics.WordCount)
	scores.ATSCompatibility = scoring.ATSCompatibility(result.TextMetrics.WordCount, density)

	result.ContentSimilarity = similarity
	result.CategoryScores = scores
	result.OverallScore = scoring.Aggregate(similarity, scores, e.opts.Weights)
	result.ScoreCategory = scoring.ScoreCategory(result.OverallScore)
	result.MatchedSkills, result.MissingSkills = matching.Partition(matches)
	result.Experience = types.ExperienceSummary{
		ResumeYears: resumeSignals.Years,
		JobYears:    jobSignals.Years,
		ResumeLevel: extraction.ExperienceLevel(resumeSignals.Years),
	}
	result.Education = types.EducationSummary{
		ResumeLevel: resumeSignals.Education,
		JobLevel:    jobSignals.Education,
	}
	result.KeywordAnalysis = types.KeywordAnalysis{
		ResumeTechnical: resumeSignals.Technical.WithRole(types.RoleResume),
		ResumeSoft:      resumeSignals.Soft.WithRole(types.RoleResume),
		JobTechnical:    jobSignals.Technical.WithRole(types.RoleJobDescription),
		JobSoft:         jobSignals.Soft.WithRole(types.RoleJobDescription),
		KeyPhrases:      []string{},
		Density:         density,
	}
	result.SkillGaps = []types.SkillGap{}
	result.StrengthAreas = []types.StrengthArea{}
	result.Recommendations = []types.Recommendation{}

	e.optional(result, "key phrases", func() {
		result.KeywordAnalysis.KeyPhrases = extraction.KeyPhrases(resumeDoc.Raw, e.opts.MaxKeyPhrases)
	})
	e.optional(result, "skill gaps", func() {
		result.SkillGaps = recommend.SkillGaps(matches)
		result.StrengthAreas = recommend.StrengthAreas(matches)
	})
	e.optional(result, "recommendations", func() {
		result.Recommendations = e.recommend(recommend.Input{
			Matches:    matches,
			Scores:     scores,
			Experience: result.Experience,
			Education:  result.Education,
			Density:    density,
		}, e.opts.Recommend)
	})

	result.Summary = summarize(result)
	if result.Partial {
		e.logger.Warn("analysis completed with partial result", "warnings", result.Warnings)
	}
	return result
}

// optional runs a stage whose failure lowers confidence without discarding
// the analysis.
func (e *Engine) optional(result *types.AnalysisResult, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("analysis stage failed", "stage", stage, "panic", r)
			result.Partial = true
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s unavailable: %v", stage, r))
		}
	}()
	fn()
}
