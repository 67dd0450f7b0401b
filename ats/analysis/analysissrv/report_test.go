package analysissrv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/kernel"
)

func strongBreakdown() analysis.ScoreBreakdown {
	return analysis.ScoreBreakdown{
		KeywordScore:      90,
		FormatScore:       80,
		AchievementsScore: 75,
	}
}

func weakBreakdown() analysis.ScoreBreakdown {
	return analysis.ScoreBreakdown{
		KeywordScore:      30,
		FormatScore:       40,
		AchievementsScore: 20,
	}
}

func TestReportGenerator_StrongResumeGetsOnlyGenericTip(t *testing.T) {
	g := NewReportGenerator()
	doc := &analysis.ExtractedDocument{Headings: []string{"experience", "education", "skills"}}

	report := g.Generate("id-1", strongBreakdown(), nil, doc, time.Now())

	require.Len(t, report.Suggestions, 1)
	assert.Contains(t, report.Suggestions[0], "Keep formatting simple")
}

func TestReportGenerator_WeakResumeGetsAllTips(t *testing.T) {
	g := NewReportGenerator()
	doc := &analysis.ExtractedDocument{}
	matches := []analysis.KeywordMatch{
		{Category: taxonomy.CategoryTechnicalSkills, Matched: []string{}, Missing: []string{"python", "docker"}},
	}

	report := g.Generate("id-2", weakBreakdown(), matches, doc, time.Now())

	require.Len(t, report.Suggestions, 4)
	assert.Contains(t, report.Suggestions[0], "python, docker")
	assert.Contains(t, report.Suggestions[1], "experience")
	assert.Contains(t, report.Suggestions[2], "Quantify")
	assert.Contains(t, report.Suggestions[3], "Keep formatting simple")
}

func TestReportGenerator_MissingKeywordsComeFromHeaviestCategory(t *testing.T) {
	g := NewReportGenerator()
	matches := []analysis.KeywordMatch{
		{Category: taxonomy.CategorySoftSkills, Missing: []string{"communication"}},
		{Category: taxonomy.CategoryExperienceTerms, Missing: []string{"agile", "scrum"}},
	}

	// technical_skills has nothing missing, so experience_terms wins over soft_skills
	missing := g.topMissingKeywords(matches)
	assert.Equal(t, []string{"agile", "scrum"}, missing)
}

func TestReportGenerator_MissingKeywordsAreBounded(t *testing.T) {
	g := NewReportGenerator()
	matches := []analysis.KeywordMatch{
		{Category: taxonomy.CategoryTechnicalSkills, Missing: []string{"a", "b", "c", "d", "e", "f", "g"}},
	}

	assert.Len(t, g.topMissingKeywords(matches), defaultTopMissing)
}

func TestReportGenerator_TipsAreDeterministic(t *testing.T) {
	g := NewReportGenerator()
	doc := &analysis.ExtractedDocument{Headings: []string{"skills"}}
	matches := []analysis.KeywordMatch{
		{Category: taxonomy.CategoryTechnicalSkills, Missing: []string{"go", "rust"}},
	}
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := g.Generate("id-3", weakBreakdown(), matches, doc, at)
	second := g.Generate("id-3", weakBreakdown(), matches, doc, at)

	assert.Equal(t, first, second)
}

func TestReportGenerator_CarriesIDAndTimestamp(t *testing.T) {
	g := NewReportGenerator()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	report := g.Generate(kernel.AnalysisID("abc"), strongBreakdown(), nil, &analysis.ExtractedDocument{}, at)

	assert.Equal(t, kernel.AnalysisID("abc"), report.ID)
	assert.Equal(t, at, report.GeneratedAt)
}
