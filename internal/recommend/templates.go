package recommend

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

func skillGapRecommendation(m types.SkillMatch) types.Recommendation {
	priority := Priority(m.Importance)
	var action string
	switch priority {
	case types.PriorityCritical:
		action = fmt.Sprintf("This is a core requirement mentioned %s. Add a dedicated section showing %s projects, certifications or experience with concrete outcomes.",
			times(m.JobFrequency), m.Skill)
	case types.PriorityHigh:
		action = fmt.Sprintf("Mentioned %s. List %s in your skills section and reference it in relevant work experience with examples.",
			times(m.JobFrequency), m.Skill)
	default:
		action = fmt.Sprintf("Consider adding %s to strengthen your profile. Mention any related experience or training.", m.Skill)
	}

	category := "technical_skills"
	title := fmt.Sprintf("Add %s expertise to your resume", m.Skill)
	if m.Category == types.CategorySoft {
		category = "soft_skills"
		title = fmt.Sprintf("Highlight your %s abilities", m.Skill)
	}

	return types.Recommendation{
		Type:        TypeSkillGap,
		Category:    category,
		Priority:    priority,
		Title:       title,
		Description: fmt.Sprintf("%s appears %s in the job description but not in your resume", m.Skill, times(m.JobFrequency)),
		Action:      action,
		Impact:      "high",
	}
}

func amplifyRecommendation(s types.StrengthArea) types.Recommendation {
	return types.Recommendation{
		Type:        TypeSkillEnhancement,
		Category:    "skill_enhancement",
		Priority:    types.PriorityMedium,
		Title:       fmt.Sprintf("Amplify your %s expertise", s.Skill),
		Description: fmt.Sprintf("You mention %s %s. Make it more prominent.", s.Skill, times(s.Frequency)),
		Action:      fmt.Sprintf("Move %s toward the top of your skills section and attach measurable results to the projects that used it.", s.Skill),
		Impact:      "medium",
	}
}

func categoryRecommendations(in Input) []types.Recommendation {
	var recs []types.Recommendation
	if in.Scores.Experience < 100 {
		recs = append(recs, types.Recommendation{
			Type:        TypeExperience,
			Category:    "experience",
			Priority:    types.PriorityHigh,
			Title:       "Close the experience gap",
			Description: fmt.Sprintf("The role asks for %d years of experience and your resume shows %d", in.Experience.JobYears, in.Experience.ResumeYears),
			Action:      "State your total years of relevant experience explicitly and count internships, freelance and open source work where it applies.",
			Impact:      "high",
		})
	}
	if in.Scores.Education < 100 {
		recs = append(recs, types.Recommendation{
			Type:        TypeEducation,
			Category:    "education",
			Priority:    types.PriorityMedium,
			Title:       "Address the education requirement",
			Description: fmt.Sprintf("The role asks for %s level education and your resume shows %s", in.Education.JobLevel, in.Education.ResumeLevel),
			Action:      "List degrees, ongoing studies and relevant certifications in a clearly labeled Education section.",
			Impact:      "medium",
		})
	}
	if in.Scores.ATSCompatibility < atsWeak {
		recs = append(recs, types.Recommendation{
			Type:        TypeKeywords,
			Category:    "ats",
			Priority:    types.PriorityHigh,
			Title:       "Improve keyword coverage",
			Description: fmt.Sprintf("Only %.0f%% of the job's keywords appear in your resume", in.Density.Coverage),
			Action:      "Reuse the exact skill names from the posting where they truthfully describe your work.",
			Impact:      "high",
		})
	}
	return recs
}

func genericRecommendations() []types.Recommendation {
	return []types.Recommendation{
		{
			Type:        TypeFormatting,
			Category:    "formatting",
			Priority:    types.PriorityHigh,
			Title:       "Optimize resume structure for ATS scanning",
			Description: "Applicant tracking systems parse simple layouts most reliably",
			Action:      "Use standard section headers (Experience, Education, Skills). Avoid tables and graphics. Keep bullet formatting consistent.",
			Impact:      "high",
		},
		{
			Type:        TypeKeywords,
			Category:    "content",
			Priority:    types.PriorityHigh,
			Title:       "Increase keyword density and relevance",
			Description: "Closer wording to the job description improves keyword matching",
			Action:      "Work job-specific keywords into your experience descriptions naturally, using the posting's own phrasing.",
			Impact:      "high",
		},
		{
			Type:        TypeContent,
			Category:    "content",
			Priority:    types.PriorityMedium,
			Title:       "Add quantifiable achievements and metrics",
			Description: "Measurable results make experience concrete",
			Action:      `Replace generic descriptions with numbers, for example "Reduced processing time by 40%".`,
			Impact:      "medium",
		},
		{
			Type:        TypeIndustry,
			Category:    "content",
			Priority:    types.PriorityMedium,
			Title:       "Align experience with industry requirements",
			Description: "Frame your background in the target role's terms",
			Action:      "Emphasize relevant projects and transferable skills using the industry's terminology.",
			Impact:      "medium",
		},
	}
}

func times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}
