package analysissrv

import (
	"strings"

	"github.com/folioforge/ats/ats/analysis"
)

// MaxAchievementsScore is the raw ceiling of the achievements sub-score
const MaxAchievementsScore = 30.0

// pointsPerQuantifiedLine converts quantified statements into raw points. A
// handful of solid quantified bullets should carry this dimension: five such
// lines already score 25 of 30.
const pointsPerQuantifiedLine = 5.0

// impactVerbs signal an achievement when they share a line with a
// quantification token
var impactVerbs = map[string]struct{}{
	"increased":    {},
	"decreased":    {},
	"reduced":      {},
	"improved":     {},
	"led":          {},
	"managed":      {},
	"achieved":     {},
	"delivered":    {},
	"launched":     {},
	"grew":         {},
	"generated":    {},
	"saved":        {},
	"optimized":    {},
	"drove":        {},
	"built":        {},
	"boosted":      {},
	"cut":          {},
	"expanded":     {},
	"accelerated":  {},
	"streamlined":  {},
	"implemented":  {},
	"automated":    {},
	"scaled":       {},
	"exceeded":     {},
	"outperformed": {},
}

// AchievementAnalyzer scores quantified achievements in [0,30]. A line
// counts once when it contains both an impact verb and a quantification
// token (number, percent or currency), so repeating figures inside one line
// earns nothing extra. It never errors.
type AchievementAnalyzer struct{}

func NewAchievementAnalyzer() *AchievementAnalyzer {
	return &AchievementAnalyzer{}
}

func (a *AchievementAnalyzer) Analyze(doc *analysis.ExtractedDocument) float64 {
	count := 0
	for _, line := range doc.Lines {
		if isQuantifiedStatement(line) {
			count++
		}
	}

	score := pointsPerQuantifiedLine * float64(count)
	if score > MaxAchievementsScore {
		score = MaxAchievementsScore
	}
	return score
}

func isQuantifiedStatement(line string) bool {
	return hasImpactVerb(line) && hasQuantification(line)
}

func hasImpactVerb(line string) bool {
	for _, tok := range strings.Fields(line) {
		if _, ok := impactVerbs[trimTokenEdges(tok)]; ok {
			return true
		}
	}
	return false
}

func hasQuantification(line string) bool {
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			return true
		case r == '%' || r == '$' || r == '€' || r == '£':
			return true
		}
	}
	return false
}
