package analysissrv

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/errx"
	"github.com/folioforge/ats/pkg/kernel"
)

// stubExtractor returns a canned document for any input
type stubExtractor struct {
	doc *analysis.ExtractedDocument
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, fileBytes []byte, declaredMIME string) (*analysis.ExtractedDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

// memoryHistory records saves in memory
type memoryHistory struct {
	saved []*analysis.Record
}

func (m *memoryHistory) Save(ctx context.Context, rec *analysis.Record) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *memoryHistory) GetByID(ctx context.Context, id kernel.AnalysisID) (*analysis.Record, error) {
	for _, rec := range m.saved {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, analysis.ErrRecordNotFound()
}

func (m *memoryHistory) Delete(ctx context.Context, id kernel.AnalysisID) error {
	for i, rec := range m.saved {
		if rec.ID == id {
			m.saved = append(m.saved[:i], m.saved[i+1:]...)
			return nil
		}
	}
	return analysis.ErrRecordNotFound()
}

func (m *memoryHistory) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[analysis.Record], error) {
	records := make([]analysis.Record, 0, len(m.saved))
	for _, rec := range m.saved {
		records = append(records, *rec)
	}
	return kernel.NewPaginated(records, int64(len(records)), p), nil
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func strongResumeDoc() *analysis.ExtractedDocument {
	lines := []string{
		"experience",
		"• increased revenue by 25% building python services",
		"• reduced latency by 300ms with docker and kubernetes",
		"education",
		"bs computer science",
		"skills",
		"python docker kubernetes communication",
	}
	return &analysis.ExtractedDocument{
		Text:        strings.Join(lines, "\n"),
		Lines:       lines,
		Kind:        analysis.KindText,
		Headings:    []string{"experience", "education", "skills"},
		BulletLines: 2,
		TotalLines:  len(lines),
	}
}

func sparseResumeDoc() *analysis.ExtractedDocument {
	lines := []string{"jane doe", "worked at a company for some years"}
	return &analysis.ExtractedDocument{
		Text:       strings.Join(lines, "\n"),
		Lines:      lines,
		Kind:       analysis.KindText,
		TotalLines: len(lines),
	}
}

func testKeywords() *taxonomy.Set {
	return &taxonomy.Set{
		TechnicalSkills: []string{"python", "docker", "kubernetes", "terraform"},
		SoftSkills:      []string{"communication"},
		ExperienceTerms: []string{"revenue"},
	}
}

func TestService_AnalyzeProducesCompleteReport(t *testing.T) {
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil).WithClock(fixedClock())

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{
		FileBytes: []byte("resume"),
		Keywords:  testKeywords(),
	})
	require.NoError(t, err)

	assert.True(t, report.ID.IsValidUUID())
	assert.Len(t, report.Matches, len(taxonomy.Categories))
	assert.Greater(t, report.TotalScore, 0.0)
	assert.LessOrEqual(t, report.TotalScore, 100.0)
	assert.NotEmpty(t, report.Suggestions)
	assert.Equal(t, fixedClock()(), report.GeneratedAt)
}

func TestService_StrongResumeOutscoresSparseOne(t *testing.T) {
	ctx := context.Background()
	keywords := testKeywords()

	strongSvc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil).WithClock(fixedClock())
	strong, err := strongSvc.Analyze(ctx, AnalyzeRequest{FileBytes: []byte("a"), Keywords: keywords})
	require.NoError(t, err)

	sparseSvc := NewService(&stubExtractor{doc: sparseResumeDoc()}, nil).WithClock(fixedClock())
	sparse, err := sparseSvc.Analyze(ctx, AnalyzeRequest{FileBytes: []byte("b"), Keywords: keywords})
	require.NoError(t, err)

	assert.Greater(t, strong.TotalScore, sparse.TotalScore)
	assert.Greater(t, strong.Breakdown.RawKeywordScore, sparse.Breakdown.RawKeywordScore)
	assert.Greater(t, strong.Breakdown.RawAchievementsScore, sparse.Breakdown.RawAchievementsScore)
}

func TestService_FullyMatchedResumeScoresAtLeastNinety(t *testing.T) {
	lines := []string{
		"experience",
		"• increased revenue by 25% with python and docker",
		"• reduced costs by 10% using kubernetes",
		"• improved uptime to 99.9% with automation",
		"• delivered 4 major releases",
		"• launched 2 products",
		"education",
		"bs computer science",
		"skills",
		"python docker kubernetes communication aws certified",
	}
	doc := &analysis.ExtractedDocument{
		Text:        strings.Join(lines, "\n"),
		Lines:       lines,
		Kind:        analysis.KindText,
		Headings:    []string{"experience", "education", "skills"},
		BulletLines: 5,
		TotalLines:  len(lines),
	}
	keywords := &taxonomy.Set{
		TechnicalSkills:       []string{"python", "docker", "kubernetes"},
		SoftSkills:            []string{"communication"},
		Certifications:        []string{"aws certified"},
		ExperienceTerms:       []string{"revenue"},
		EducationRequirements: []string{"computer science"},
	}

	svc := NewService(&stubExtractor{doc: doc}, nil).WithClock(fixedClock())
	report, err := svc.Analyze(context.Background(), AnalyzeRequest{FileBytes: []byte("a"), Keywords: keywords})
	require.NoError(t, err)

	// every phrase matched, full structure, five quantified bullets
	assert.Empty(t, report.MissingPhrases())
	assert.InDelta(t, MaxKeywordScore, report.Breakdown.RawKeywordScore, 1e-9)
	assert.InDelta(t, MaxFormatScore, report.Breakdown.RawFormatScore, 1e-9)
	assert.GreaterOrEqual(t, report.TotalScore, 90.0)
	assert.LessOrEqual(t, report.TotalScore, 100.0)
}

func TestService_AnalyzeIsIdempotent(t *testing.T) {
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil).WithClock(fixedClock())
	req := AnalyzeRequest{FileBytes: []byte("same bytes"), Keywords: testKeywords()}

	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_DifferentInputsGetDifferentIDs(t *testing.T) {
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil).WithClock(fixedClock())

	byFile, err := svc.Analyze(context.Background(), AnalyzeRequest{FileBytes: []byte("one"), Keywords: testKeywords()})
	require.NoError(t, err)
	byOtherFile, err := svc.Analyze(context.Background(), AnalyzeRequest{FileBytes: []byte("two"), Keywords: testKeywords()})
	require.NoError(t, err)

	assert.NotEqual(t, byFile.ID, byOtherFile.ID)
}

func TestService_NilKeywordsRejected(t *testing.T) {
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{FileBytes: []byte("x")})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeInvalidKeywords, e.Code)
}

func TestService_EmptyKeywordSetRejected(t *testing.T) {
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		FileBytes: []byte("x"),
		Keywords:  &taxonomy.Set{},
	})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeInvalidKeywords, e.Code)
}

func TestService_ExtractorErrorsPropagate(t *testing.T) {
	svc := NewService(&stubExtractor{err: analysis.ErrUnsupportedFormat()}, nil)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		FileBytes: []byte("x"),
		Keywords:  testKeywords(),
	})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeUnsupportedFormat, e.Code)
}

func TestService_EmptyDocumentScoresNearZero(t *testing.T) {
	empty := &analysis.ExtractedDocument{Kind: analysis.KindText}
	svc := NewService(&stubExtractor{doc: empty}, nil).WithClock(fixedClock())

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{
		FileBytes: []byte(""),
		Keywords:  testKeywords(),
	})
	require.NoError(t, err)

	assert.Zero(t, report.TotalScore)
}

func TestService_SavesHistoryWhenConfigured(t *testing.T) {
	history := &memoryHistory{}
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, history).WithClock(fixedClock())

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{
		FileBytes:       []byte("resume"),
		FileName:        "jane.txt",
		Keywords:        testKeywords(),
		Profession:      "software engineer",
		ExperienceLevel: "mid",
	})
	require.NoError(t, err)

	require.Len(t, history.saved, 1)
	rec := history.saved[0]
	assert.Equal(t, report.ID, rec.ID)
	assert.Equal(t, "jane.txt", rec.FileName)
	assert.Equal(t, "software engineer", rec.Profession)
	assert.Equal(t, report.TotalScore, rec.TotalScore)

	got, err := svc.GetRecord(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestService_DeleteRecord(t *testing.T) {
	history := &memoryHistory{}
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, history).WithClock(fixedClock())

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{
		FileBytes: []byte("resume"),
		Keywords:  testKeywords(),
	})
	require.NoError(t, err)
	require.Len(t, history.saved, 1)

	require.NoError(t, svc.DeleteRecord(context.Background(), report.ID))
	assert.Empty(t, history.saved)

	// deleting again reports not found
	err = svc.DeleteRecord(context.Background(), report.ID)
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeRecordNotFound, e.Code)
}

func TestService_HistoryUnavailableWithoutRepository(t *testing.T) {
	svc := NewService(&stubExtractor{doc: strongResumeDoc()}, nil)

	_, err := svc.GetRecord(context.Background(), kernel.NewAnalysisID())
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeHistoryUnavailable, e.Code)

	_, err = svc.ListRecords(context.Background(), kernel.PaginationOptions{})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeHistoryUnavailable, e.Code)

	err = svc.DeleteRecord(context.Background(), kernel.NewAnalysisID())
	require.ErrorAs(t, err, &e)
	assert.Equal(t, analysis.CodeHistoryUnavailable, e.Code)
}
