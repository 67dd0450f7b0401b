package analysissrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/kernel"
	"github.com/folioforge/ats/pkg/logx"
)

// analysisNamespace seeds the deterministic analysis IDs. Same file plus same
// keyword set always yields the same ID, which makes reruns idempotent.
var analysisNamespace = uuid.MustParse("7f1c8a52-93be-4bd0-9c61-2a4f0d8e6b3a")

// AnalyzeRequest carries one resume upload plus the keyword set to score it
// against. Profession and ExperienceLevel are metadata for the history record
// only; scoring depends solely on FileBytes and Keywords.
type AnalyzeRequest struct {
	FileBytes       []byte
	DeclaredMIME    string
	FileName        string
	Keywords        *taxonomy.Set
	Profession      string
	ExperienceLevel string
}

type Service struct {
	extractor    analysis.Extractor
	matcher      *KeywordMatcher
	format       *FormatAnalyzer
	achievements *AchievementAnalyzer
	reporter     *ReportGenerator
	history      analysis.HistoryRepository // nil when history is not configured
	now          func() time.Time
}

func NewService(extractor analysis.Extractor, history analysis.HistoryRepository) *Service {
	return &Service{
		extractor:    extractor,
		matcher:      NewKeywordMatcher(DefaultMatchWindow),
		format:       NewFormatAnalyzer(),
		achievements: NewAchievementAnalyzer(),
		reporter:     NewReportGenerator(),
		history:      history,
		now:          time.Now,
	}
}

// WithClock overrides the report timestamp source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Analyze runs the full pipeline: extract, score the three dimensions,
// aggregate and build the report. The same upload and keyword set always
// produce the same report apart from GeneratedAt.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*analysis.Report, error) {
	set, err := normalizeKeywords(req.Keywords)
	if err != nil {
		return nil, err
	}

	doc, err := s.extractor.Extract(ctx, req.FileBytes, req.DeclaredMIME)
	if err != nil {
		return nil, err
	}

	var (
		matches                       []analysis.KeywordMatch
		rawKeyword, rawFmt, rawAchiev float64
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches = s.matcher.Match(doc, set)
		rawKeyword = s.matcher.Score(matches)
		return nil
	})
	g.Go(func() error {
		rawFmt = s.format.Analyze(doc)
		return nil
	})
	g.Go(func() error {
		rawAchiev = s.achievements.Analyze(doc)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown, err := AggregateScores(rawKeyword, rawFmt, rawAchiev)
	if err != nil {
		return nil, err
	}

	id, err := deterministicID(req.FileBytes, set)
	if err != nil {
		return nil, analysis.ErrInvariantViolation().WithDetail("stage", "analysis_id")
	}

	report := s.reporter.Generate(id, breakdown, matches, doc, s.now().UTC())

	if s.history != nil {
		s.saveRecord(ctx, req, doc, report)
	}

	return report, nil
}

// GetRecord fetches one persisted analysis by ID
func (s *Service) GetRecord(ctx context.Context, id kernel.AnalysisID) (*analysis.Record, error) {
	if s.history == nil {
		return nil, analysis.ErrHistoryUnavailable()
	}
	return s.history.GetByID(ctx, id)
}

// DeleteRecord removes one persisted analysis by ID
func (s *Service) DeleteRecord(ctx context.Context, id kernel.AnalysisID) error {
	if s.history == nil {
		return analysis.ErrHistoryUnavailable()
	}
	return s.history.Delete(ctx, id)
}

// ListRecords pages through persisted analysis summaries, newest first
func (s *Service) ListRecords(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.Record], error) {
	if s.history == nil {
		return nil, analysis.ErrHistoryUnavailable()
	}
	return s.history.List(ctx, pagination.Normalized())
}

// saveRecord persists the summary best-effort; a storage failure never fails
// the analysis itself
func (s *Service) saveRecord(ctx context.Context, req AnalyzeRequest, doc *analysis.ExtractedDocument, report *analysis.Report) {
	rec := &analysis.Record{
		ID:                report.ID,
		FileName:          req.FileName,
		FileKind:          doc.Kind,
		Profession:        req.Profession,
		ExperienceLevel:   req.ExperienceLevel,
		TotalScore:        report.TotalScore,
		KeywordScore:      report.Breakdown.KeywordScore,
		FormatScore:       report.Breakdown.FormatScore,
		AchievementsScore: report.Breakdown.AchievementsScore,
		Report:            report,
		CreatedAt:         report.GeneratedAt,
	}
	if err := s.history.Save(ctx, rec); err != nil {
		logx.Warnf("Failed to save analysis record %s: %v", report.ID, err)
	}
}

func normalizeKeywords(set *taxonomy.Set) (*taxonomy.Set, error) {
	if set == nil {
		return nil, analysis.ErrInvalidKeywords(nil).WithDetail("reason", "keywords are required")
	}
	normalized := set.Normalized()
	if err := normalized.Validate(); err != nil {
		return nil, analysis.ErrInvalidKeywords(err)
	}
	return normalized, nil
}

// deterministicID derives the analysis ID from the file bytes and the
// normalized keyword set
func deterministicID(fileBytes []byte, set *taxonomy.Set) (kernel.AnalysisID, error) {
	keywordsJSON, err := json.Marshal(set)
	if err != nil {
		return "", err
	}
	payload := make([]byte, 0, len(fileBytes)+1+len(keywordsJSON))
	payload = append(payload, fileBytes...)
	payload = append(payload, 0)
	payload = append(payload, keywordsJSON...)
	return kernel.AnalysisID(uuid.NewSHA1(analysisNamespace, payload).String()), nil
}
