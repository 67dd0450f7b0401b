package analysis

import (
	"time"

	"github.com/folioforge/ats/pkg/kernel"
)

// CategoryMatchDTO - per-category matched/missing lists for the wire
type CategoryMatchDTO struct {
	Category string   `json:"category"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
}

// DetailedAnalysisDTO - the keyword detail block of the analyze response
type DetailedAnalysisDTO struct {
	KeywordsFound   []string           `json:"keywords_found"`
	MissingKeywords []string           `json:"missing_keywords"`
	Categories      []CategoryMatchDTO `json:"categories"`
}

// AnalyzeResumeResponse - wire shape of a completed analysis. All scores are
// on the 0-100 display scale.
type AnalyzeResumeResponse struct {
	AnalysisID        string              `json:"analysis_id"`
	TotalScore        float64             `json:"total_score"`
	KeywordScore      float64             `json:"keyword_score"`
	FormatScore       float64             `json:"format_score"`
	AchievementsScore float64             `json:"achievements_score"`
	DetailedAnalysis  DetailedAnalysisDTO `json:"detailed_analysis"`
	Suggestions       []string            `json:"suggestions"`
	AnalyzedAt        time.Time           `json:"analyzed_at"`
}

// NewAnalyzeResumeResponse flattens a Report into its wire shape
func NewAnalyzeResumeResponse(r *Report) *AnalyzeResumeResponse {
	categories := make([]CategoryMatchDTO, 0, len(r.Matches))
	for _, m := range r.Matches {
		categories = append(categories, CategoryMatchDTO{
			Category: string(m.Category),
			Matched:  m.Matched,
			Missing:  m.Missing,
		})
	}

	return &AnalyzeResumeResponse{
		AnalysisID:        r.ID.String(),
		TotalScore:        r.TotalScore,
		KeywordScore:      r.Breakdown.KeywordScore,
		FormatScore:       r.Breakdown.FormatScore,
		AchievementsScore: r.Breakdown.AchievementsScore,
		DetailedAnalysis: DetailedAnalysisDTO{
			KeywordsFound:   r.MatchedPhrases(),
			MissingKeywords: r.MissingPhrases(),
			Categories:      categories,
		},
		Suggestions: r.Suggestions,
		AnalyzedAt:  r.GeneratedAt,
	}
}

// RecordSummaryDTO - one row of the analysis history listing
type RecordSummaryDTO struct {
	ID                string    `json:"id"`
	FileName          string    `json:"file_name"`
	FileKind          string    `json:"file_kind"`
	Profession        string    `json:"profession"`
	ExperienceLevel   string    `json:"experience_level"`
	TotalScore        float64   `json:"total_score"`
	KeywordScore      float64   `json:"keyword_score"`
	FormatScore       float64   `json:"format_score"`
	AchievementsScore float64   `json:"achievements_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaginatedRecordsResponse - DTO for the history listing
type PaginatedRecordsResponse = kernel.Paginated[RecordSummaryDTO]

// NewRecordSummaryDTO converts a Record to its listing shape
func NewRecordSummaryDTO(rec *Record) RecordSummaryDTO {
	return RecordSummaryDTO{
		ID:                rec.ID.String(),
		FileName:          rec.FileName,
		FileKind:          string(rec.FileKind),
		Profession:        rec.Profession,
		ExperienceLevel:   rec.ExperienceLevel,
		TotalScore:        rec.TotalScore,
		KeywordScore:      rec.KeywordScore,
		FormatScore:       rec.FormatScore,
		AchievementsScore: rec.AchievementsScore,
		CreatedAt:         rec.CreatedAt,
	}
}
