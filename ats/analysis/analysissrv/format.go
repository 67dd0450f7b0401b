package analysissrv

import (
	"unicode"

	"github.com/folioforge/ats/ats/analysis"
)

// MaxFormatScore is the raw ceiling of the format sub-score
const MaxFormatScore = 30.0

// standardHeadings are the sections the format heuristics reward
var standardHeadings = []string{"experience", "education", "skills", "projects", "summary"}

const (
	headingTarget       = 3   // full heading points at 3 of 5 standard sections
	bulletLinesPerBlock = 5   // expect roughly one bullet per 5 body lines
	defaultNoiseCeiling = 0.1 // max tolerated non-alphanumeric noise ratio
)

// FormatAnalyzer scores document structure in [0,30]: 10 points for standard
// headings, 10 for bullet density, 10 for a clean extraction (low noise).
// It never errors; a document with no structure scores 0.
type FormatAnalyzer struct {
	noiseCeiling float64
}

func NewFormatAnalyzer() *FormatAnalyzer {
	return &FormatAnalyzer{noiseCeiling: defaultNoiseCeiling}
}

func (a *FormatAnalyzer) Analyze(doc *analysis.ExtractedDocument) float64 {
	if doc.TotalLines == 0 {
		return 0
	}
	return a.headingScore(doc) + a.bulletScore(doc) + a.noiseScore(doc)
}

// headingScore gives up to 10 points, proportional to standard headings
// found, capped at headingTarget
func (a *FormatAnalyzer) headingScore(doc *analysis.ExtractedDocument) float64 {
	found := 0
	for _, h := range standardHeadings {
		if doc.HasHeading(h) {
			found++
		}
	}
	if found > headingTarget {
		found = headingTarget
	}
	return 10.0 * float64(found) / float64(headingTarget)
}

// bulletScore gives up to 10 points, proportional to bullet density against
// one bullet per bulletLinesPerBlock lines
func (a *FormatAnalyzer) bulletScore(doc *analysis.ExtractedDocument) float64 {
	expected := float64(doc.TotalLines) / float64(bulletLinesPerBlock)
	if expected < 1 {
		expected = 1
	}
	ratio := float64(doc.BulletLines) / expected
	if ratio > 1 {
		ratio = 1
	}
	return 10.0 * ratio
}

// noiseScore is pass/fail: 10 points when the non-alphanumeric noise ratio
// stays under the ceiling. A high ratio is a proxy for tables, images or
// complex layout the extractor mangled.
func (a *FormatAnalyzer) noiseScore(doc *analysis.ExtractedDocument) float64 {
	if noiseRatio(doc.Text) <= a.noiseCeiling {
		return 10.0
	}
	return 0
}

func noiseRatio(text string) float64 {
	if text == "" {
		return 0
	}
	noise, total := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if isCommonPunct(r) {
			continue
		}
		noise++
	}
	return float64(noise) / float64(total)
}

func isCommonPunct(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', '(', ')', '\'', '"', '/', '&', '+', '-', '%', '$', '@', '#', '*', '•':
		return true
	}
	return false
}
