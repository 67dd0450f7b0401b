package analysissrv

import (
	"fmt"
	"strings"
	"time"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/pkg/kernel"
)

// Tip thresholds on the 0-100 display scale
const (
	keywordTipThreshold      = 75.0
	formatTipThreshold       = 67.0
	achievementsTipThreshold = 67.0
)

// defaultTopMissing bounds how many missing keywords a tip names
const defaultTopMissing = 5

// ReportGenerator assembles the final AnalysisReport. Tip rules are ordered
// and cumulative: every applicable tip is included, and identical input
// always produces the identical tip list.
type ReportGenerator struct {
	topMissing int
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{topMissing: defaultTopMissing}
}

func (g *ReportGenerator) Generate(
	id kernel.AnalysisID,
	breakdown analysis.ScoreBreakdown,
	matches []analysis.KeywordMatch,
	doc *analysis.ExtractedDocument,
	generatedAt time.Time,
) *analysis.Report {
	return &analysis.Report{
		ID:          id,
		TotalScore:  breakdown.TotalScore,
		Breakdown:   breakdown,
		Matches:     matches,
		Suggestions: g.suggestions(breakdown, matches, doc),
		GeneratedAt: generatedAt,
	}
}

func (g *ReportGenerator) suggestions(
	breakdown analysis.ScoreBreakdown,
	matches []analysis.KeywordMatch,
	doc *analysis.ExtractedDocument,
) []string {
	var tips []string

	if breakdown.KeywordScore < keywordTipThreshold {
		if missing := g.topMissingKeywords(matches); len(missing) > 0 {
			tips = append(tips, fmt.Sprintf(
				"Work relevant keywords into your experience and skills sections, for example: %s.",
				strings.Join(missing, ", ")))
		}
	}

	if breakdown.FormatScore < formatTipThreshold {
		if absent := missingStandardHeadings(doc); len(absent) > 0 {
			tips = append(tips, fmt.Sprintf(
				"Add clearly labeled sections for: %s.",
				strings.Join(absent, ", ")))
		} else {
			tips = append(tips, "Use more bullet points to make your experience easy to scan.")
		}
	}

	if breakdown.AchievementsScore < achievementsTipThreshold {
		tips = append(tips, `Quantify your achievements with numbers, percentages or amounts (e.g. "Increased sales by 15%").`)
	}

	// Always close with the generic formatting tip
	tips = append(tips, "Keep formatting simple: single column, standard fonts, no tables or images.")

	return tips
}

// topMissingKeywords picks up to topMissing missing phrases from the
// heaviest-weighted category that has any, preserving taxonomy order
func (g *ReportGenerator) topMissingKeywords(matches []analysis.KeywordMatch) []string {
	byCategory := make(map[string][]string, len(matches))
	for _, m := range matches {
		byCategory[string(m.Category)] = m.Missing
	}

	for _, c := range categoriesByWeight {
		missing := byCategory[string(c)]
		if len(missing) == 0 {
			continue
		}
		if len(missing) > g.topMissing {
			missing = missing[:g.topMissing]
		}
		return missing
	}
	return nil
}

func missingStandardHeadings(doc *analysis.ExtractedDocument) []string {
	var absent []string
	for _, h := range standardHeadings {
		if !doc.HasHeading(h) {
			absent = append(absent, h)
		}
	}
	return absent
}
