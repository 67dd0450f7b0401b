package analysissrv

import (
	"math"

	"github.com/folioforge/ats/ats/analysis"
)

// Display scale multipliers: raw ceilings 40/30/30 map to 0-100
const (
	keywordDisplayFactor      = 2.5
	formatDisplayFactor       = 10.0 / 3.0
	achievementsDisplayFactor = 10.0 / 3.0
)

// rangeEpsilon absorbs float accumulation at the ceilings
const rangeEpsilon = 1e-9

// AggregateScores combines the three raw sub-scores into a ScoreBreakdown.
// Pure function, no I/O. Producers must already have clamped their scores to
// the category ceilings; out-of-range input is an invariant violation, not
// something to silently clamp, so upstream bugs stay visible.
func AggregateScores(rawKeyword, rawFormat, rawAchievements float64) (analysis.ScoreBreakdown, error) {
	if !inRange(rawKeyword, MaxKeywordScore) {
		return analysis.ScoreBreakdown{}, analysis.ErrInvariantViolation().
			WithDetail("sub_score", "keyword").
			WithDetail("value", rawKeyword).
			WithDetail("ceiling", MaxKeywordScore)
	}
	if !inRange(rawFormat, MaxFormatScore) {
		return analysis.ScoreBreakdown{}, analysis.ErrInvariantViolation().
			WithDetail("sub_score", "format").
			WithDetail("value", rawFormat).
			WithDetail("ceiling", MaxFormatScore)
	}
	if !inRange(rawAchievements, MaxAchievementsScore) {
		return analysis.ScoreBreakdown{}, analysis.ErrInvariantViolation().
			WithDetail("sub_score", "achievements").
			WithDetail("value", rawAchievements).
			WithDetail("ceiling", MaxAchievementsScore)
	}

	return analysis.ScoreBreakdown{
		RawKeywordScore:      rawKeyword,
		RawFormatScore:       rawFormat,
		RawAchievementsScore: rawAchievements,
		KeywordScore:         round2(rawKeyword * keywordDisplayFactor),
		FormatScore:          round2(rawFormat * formatDisplayFactor),
		AchievementsScore:    round2(rawAchievements * achievementsDisplayFactor),
		// The total is the exact raw sum; only display scores are rounded
		TotalScore: rawKeyword + rawFormat + rawAchievements,
	}, nil
}

func inRange(v, ceiling float64) bool {
	return v >= -rangeEpsilon && v <= ceiling+rangeEpsilon
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
