package analysis

import (
	"time"

	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/kernel"
)

// DocumentKind is the detected upload format
type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
	KindText DocumentKind = "txt"
)

// ExtractedDocument is the normalized view of one uploaded resume. It is
// created once per upload, never mutated, and discarded when the analysis
// request completes.
type ExtractedDocument struct {
	// Text is the lowercase, whitespace-collapsed body; equal to the lines
	// joined with newlines.
	Text string

	// Lines are the normalized non-empty lines of the body, in order.
	Lines []string

	// ByteLength is the size of the original upload in bytes.
	ByteLength int

	Kind DocumentKind

	// Headings are the canonical resume section names detected in the
	// document, deduplicated, in order of first appearance. Detection is a
	// heuristic (short lines matching a fixed name list), not a guarantee.
	Headings []string

	// BulletLines counts lines starting with a bullet marker.
	BulletLines int

	// TotalLines counts all non-empty lines.
	TotalLines int
}

// HasHeading reports whether a canonical heading was detected
func (d *ExtractedDocument) HasHeading(name string) bool {
	for _, h := range d.Headings {
		if h == name {
			return true
		}
	}
	return false
}

// KeywordMatch partitions one taxonomy category into matched and missing
// phrases. matched ∪ missing is always the full category; the two sets never
// overlap.
type KeywordMatch struct {
	Category taxonomy.Category `json:"category"`
	Matched  []string          `json:"matched"`
	Missing  []string          `json:"missing"`
}

// ScoreBreakdown holds the three sub-scores in raw (40/30/30 ceilings) and
// display (0-100) scale. TotalScore is exactly the sum of the raw scores.
type ScoreBreakdown struct {
	RawKeywordScore      float64 `json:"raw_keyword_score"`
	RawFormatScore       float64 `json:"raw_format_score"`
	RawAchievementsScore float64 `json:"raw_achievements_score"`

	KeywordScore      float64 `json:"keyword_score"`      // raw × 2.5
	FormatScore       float64 `json:"format_score"`       // raw × 10/3
	AchievementsScore float64 `json:"achievements_score"` // raw × 10/3

	TotalScore float64 `json:"total_score"`
}

// Report is the final analysis result handed to the caller. The engine keeps
// no state across reports.
type Report struct {
	ID          kernel.AnalysisID `json:"id"`
	TotalScore  float64           `json:"total_score"`
	Breakdown   ScoreBreakdown    `json:"breakdown"`
	Matches     []KeywordMatch    `json:"matches"` // canonical category order
	Suggestions []string          `json:"suggestions"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// MatchedPhrases flattens all matched phrases across categories, in
// canonical category order.
func (r *Report) MatchedPhrases() []string {
	var out []string
	for _, m := range r.Matches {
		out = append(out, m.Matched...)
	}
	return out
}

// MissingPhrases flattens all missing phrases across categories, in
// canonical category order.
func (r *Report) MissingPhrases() []string {
	var out []string
	for _, m := range r.Matches {
		out = append(out, m.Missing...)
	}
	return out
}

// Record is the persisted summary of a completed analysis. Persistence is a
// concern of the HTTP layer; the scoring engine itself stays stateless.
type Record struct {
	ID                kernel.AnalysisID `db:"id" json:"id"`
	FileName          string            `db:"file_name" json:"file_name"`
	FileKind          DocumentKind      `db:"file_kind" json:"file_kind"`
	Profession        string            `db:"profession" json:"profession"`
	ExperienceLevel   string            `db:"experience_level" json:"experience_level"`
	TotalScore        float64           `db:"total_score" json:"total_score"`
	KeywordScore      float64           `db:"keyword_score" json:"keyword_score"`
	FormatScore       float64           `db:"format_score" json:"format_score"`
	AchievementsScore float64           `db:"achievements_score" json:"achievements_score"`
	Report            *Report           `db:"-" json:"report,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}
