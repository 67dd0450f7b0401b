package analysisinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/pkg/kernel"
)

// PostgresHistoryRepository implements analysis.HistoryRepository using PostgreSQL
type PostgresHistoryRepository struct {
	db *sqlx.DB
}

// NewPostgresHistoryRepository creates a new PostgreSQL history repository
func NewPostgresHistoryRepository(db *sqlx.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{
		db: db,
	}
}

// Schema is the bootstrap DDL for the analysis history table
const Schema = `
CREATE TABLE IF NOT EXISTS ats_analyses (
	id UUID PRIMARY KEY,
	file_name TEXT NOT NULL DEFAULT '',
	file_kind TEXT NOT NULL,
	profession TEXT NOT NULL DEFAULT '',
	experience_level TEXT NOT NULL DEFAULT '',
	total_score DOUBLE PRECISION NOT NULL,
	keyword_score DOUBLE PRECISION NOT NULL,
	format_score DOUBLE PRECISION NOT NULL,
	achievements_score DOUBLE PRECISION NOT NULL,
	report JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ats_analyses_created_at ON ats_analyses (created_at DESC);
`

// EnsureSchema creates the history table when it does not exist yet
func (r *PostgresHistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure analysis history schema: %w", err)
	}
	return nil
}

// ============================================================================
// Database Model
// ============================================================================

type analysisModel struct {
	ID                string          `db:"id"`
	FileName          string          `db:"file_name"`
	FileKind          string          `db:"file_kind"`
	Profession        string          `db:"profession"`
	ExperienceLevel   string          `db:"experience_level"`
	TotalScore        float64         `db:"total_score"`
	KeywordScore      float64         `db:"keyword_score"`
	FormatScore       float64         `db:"format_score"`
	AchievementsScore float64         `db:"achievements_score"`
	Report            json.RawMessage `db:"report"`
	CreatedAt         time.Time       `db:"created_at"`
}

// toEntity converts database model to domain entity
func (m *analysisModel) toEntity() (*analysis.Record, error) {
	var report *analysis.Report
	if len(m.Report) > 0 {
		report = &analysis.Report{}
		if err := json.Unmarshal(m.Report, report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
	}

	return &analysis.Record{
		ID:                kernel.AnalysisID(m.ID),
		FileName:          m.FileName,
		FileKind:          analysis.DocumentKind(m.FileKind),
		Profession:        m.Profession,
		ExperienceLevel:   m.ExperienceLevel,
		TotalScore:        m.TotalScore,
		KeywordScore:      m.KeywordScore,
		FormatScore:       m.FormatScore,
		AchievementsScore: m.AchievementsScore,
		Report:            report,
		CreatedAt:         m.CreatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(rec *analysis.Record) (*analysisModel, error) {
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return &analysisModel{
		ID:                string(rec.ID),
		FileName:          rec.FileName,
		FileKind:          string(rec.FileKind),
		Profession:        rec.Profession,
		ExperienceLevel:   rec.ExperienceLevel,
		TotalScore:        rec.TotalScore,
		KeywordScore:      rec.KeywordScore,
		FormatScore:       rec.FormatScore,
		AchievementsScore: rec.AchievementsScore,
		Report:            report,
		CreatedAt:         rec.CreatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Save upserts a completed analysis. IDs are deterministic, so re-analyzing
// the same file with the same keywords overwrites the existing row instead of
// duplicating it.
func (r *PostgresHistoryRepository) Save(ctx context.Context, rec *analysis.Record) error {
	model, err := fromEntity(rec)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ats_analyses (
			id, file_name, file_kind, profession, experience_level,
			total_score, keyword_score, format_score, achievements_score,
			report, created_at
		) VALUES (
			:id, :file_name, :file_kind, :profession, :experience_level,
			:total_score, :keyword_score, :format_score, :achievements_score,
			:report, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			profession = EXCLUDED.profession,
			experience_level = EXCLUDED.experience_level,
			total_score = EXCLUDED.total_score,
			keyword_score = EXCLUDED.keyword_score,
			format_score = EXCLUDED.format_score,
			achievements_score = EXCLUDED.achievements_score,
			report = EXCLUDED.report,
			created_at = EXCLUDED.created_at
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "22P02" { // invalid_text_representation
			return analysis.ErrHistoryFailed(err).WithDetail("id", string(rec.ID))
		}
		return analysis.ErrHistoryFailed(fmt.Errorf("failed to save analysis record: %w", err))
	}

	return nil
}

// GetByID retrieves one analysis record, including its full report
func (r *PostgresHistoryRepository) GetByID(ctx context.Context, id kernel.AnalysisID) (*analysis.Record, error) {
	query := `
		SELECT
			id, file_name, file_kind, profession, experience_level,
			total_score, keyword_score, format_score, achievements_score,
			report, created_at
		FROM ats_analyses
		WHERE id = $1
	`

	var model analysisModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, analysis.ErrRecordNotFound().WithDetail("id", string(id))
		}
		return nil, analysis.ErrHistoryFailed(fmt.Errorf("failed to get analysis record: %w", err))
	}

	return model.toEntity()
}

// Delete removes one analysis record
func (r *PostgresHistoryRepository) Delete(ctx context.Context, id kernel.AnalysisID) error {
	query := `DELETE FROM ats_analyses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return analysis.ErrHistoryFailed(fmt.Errorf("failed to delete analysis record: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return analysis.ErrHistoryFailed(fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rows == 0 {
		return analysis.ErrRecordNotFound().WithDetail("id", string(id))
	}

	return nil
}

// List retrieves analysis records with pagination, newest first
func (r *PostgresHistoryRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.Record], error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM ats_analyses`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, analysis.ErrHistoryFailed(fmt.Errorf("failed to count analysis records: %w", err))
	}

	query := `
		SELECT
			id, file_name, file_kind, profession, experience_level,
			total_score, keyword_score, format_score, achievements_score,
			report, created_at
		FROM ats_analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []analysisModel
	err := r.db.SelectContext(ctx, &models, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, analysis.ErrHistoryFailed(fmt.Errorf("failed to list analysis records: %w", err))
	}

	records := make([]analysis.Record, 0, len(models))
	for _, model := range models {
		rec, err := model.toEntity()
		if err != nil {
			return nil, analysis.ErrHistoryFailed(err)
		}
		records = append(records, *rec)
	}

	return kernel.NewPaginated(records, total, pagination), nil
}
