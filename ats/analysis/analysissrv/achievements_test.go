package analysissrv

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folioforge/ats/ats/analysis"
)

func TestAchievementAnalyzer_CountsQuantifiedImpactLines(t *testing.T) {
	a := NewAchievementAnalyzer()
	doc := &analysis.ExtractedDocument{
		Lines: []string{
			"increased sales by 15%",
			"reduced deployment time from 2 hours to 10 minutes",
			"responsible for the checkout flow",
		},
	}

	assert.InDelta(t, 2*pointsPerQuantifiedLine, a.Analyze(doc), 1e-9)
}

func TestAchievementAnalyzer_FiveQuantifiedLinesScoreTwentyFive(t *testing.T) {
	a := NewAchievementAnalyzer()
	doc := &analysis.ExtractedDocument{
		Lines: []string{
			"increased revenue by 25%",
			"reduced costs by 10%",
			"improved uptime to 99.9%",
			"delivered 4 major releases",
			"launched 2 products",
		},
	}

	assert.InDelta(t, 25.0, a.Analyze(doc), 1e-9)
}

func TestAchievementAnalyzer_VerbWithoutNumberDoesNotCount(t *testing.T) {
	a := NewAchievementAnalyzer()
	doc := &analysis.ExtractedDocument{
		Lines: []string{"improved the onboarding experience significantly"},
	}

	assert.Zero(t, a.Analyze(doc))
}

func TestAchievementAnalyzer_NumberWithoutVerbDoesNotCount(t *testing.T) {
	a := NewAchievementAnalyzer()
	doc := &analysis.ExtractedDocument{
		Lines: []string{"2019 - 2023 acme corp"},
	}

	assert.Zero(t, a.Analyze(doc))
}

func TestAchievementAnalyzer_LineCountsOnceRegardlessOfFigures(t *testing.T) {
	a := NewAchievementAnalyzer()
	doc := &analysis.ExtractedDocument{
		Lines: []string{"grew revenue by 40% and cut costs by $2m in 6 months"},
	}

	assert.InDelta(t, pointsPerQuantifiedLine, a.Analyze(doc), 1e-9)
}

func TestAchievementAnalyzer_ScoreIsCapped(t *testing.T) {
	a := NewAchievementAnalyzer()
	doc := &analysis.ExtractedDocument{}
	for i := 0; i < 20; i++ {
		doc.Lines = append(doc.Lines, fmt.Sprintf("delivered project %d ahead of schedule by 3 weeks", i))
	}

	assert.InDelta(t, MaxAchievementsScore, a.Analyze(doc), 1e-9)
}

func TestHasQuantification_CurrencySymbols(t *testing.T) {
	assert.True(t, hasQuantification("saved $ in costs yearly"))
	assert.True(t, hasQuantification("saved € in costs yearly"))
	assert.True(t, hasQuantification("grew share by %"))
	assert.False(t, hasQuantification("grew market share substantially"))
}
