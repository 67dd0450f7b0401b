package analysisapi

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/ats/analysis/analysissrv"
	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/fsx"
	"github.com/folioforge/ats/pkg/kernel"
	"github.com/folioforge/ats/pkg/logx"
)

type Handlers struct {
	service  *analysissrv.Service
	archive  fsx.FileSystem // nil when upload archival is not configured
	maxBytes int
}

func NewHandlers(service *analysissrv.Service, archive fsx.FileSystem, maxBytes int) *Handlers {
	return &Handlers{
		service:  service,
		archive:  archive,
		maxBytes: maxBytes,
	}
}

func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Post("/analyze-resume", h.AnalyzeResume)
	app.Get("/analyses", h.ListAnalyses)
	app.Get("/analyses/:id", h.GetAnalysis)
	app.Delete("/analyses/:id", h.DeleteAnalysis)
}

// AnalyzeResume scores one uploaded resume against a keyword set
// POST /analyze-resume (multipart: file, keywords, profession?, experience_level?)
func (h *Handlers) AnalyzeResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return analysis.ErrInvalidRequest().
			WithDetail("reason", "multipart field 'file' is required")
	}

	if h.maxBytes > 0 && fileHeader.Size > int64(h.maxBytes) {
		return analysis.ErrFileTooLarge().
			WithDetail("size_bytes", fileHeader.Size).
			WithDetail("limit_bytes", h.maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return analysis.ErrExtractionFailed(err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return analysis.ErrExtractionFailed(err)
	}

	keywordsJSON := c.FormValue("keywords")
	if keywordsJSON == "" {
		return analysis.ErrInvalidKeywords(nil).
			WithDetail("reason", "multipart field 'keywords' is required")
	}
	var set taxonomy.Set
	if err := json.Unmarshal([]byte(keywordsJSON), &set); err != nil {
		return analysis.ErrInvalidKeywords(err).
			WithDetail("reason", "keywords must be a JSON object with category arrays")
	}

	report, err := h.service.Analyze(c.Context(), analysissrv.AnalyzeRequest{
		FileBytes:       fileBytes,
		DeclaredMIME:    fileHeader.Header.Get("Content-Type"),
		FileName:        fileHeader.Filename,
		Keywords:        &set,
		Profession:      c.FormValue("profession"),
		ExperienceLevel: c.FormValue("experience_level"),
	})
	if err != nil {
		return err
	}

	if h.archive != nil {
		h.archiveUpload(c, report, fileHeader.Filename, fileBytes)
	}

	return c.JSON(analysis.NewAnalyzeResumeResponse(report))
}

// GetAnalysis fetches one persisted analysis record
// GET /analyses/:id
func (h *Handlers) GetAnalysis(c *fiber.Ctx) error {
	id := kernel.AnalysisID(c.Params("id"))
	if !id.IsValidUUID() {
		return analysis.ErrRecordNotFound().WithDetail("id", id.String())
	}

	rec, err := h.service.GetRecord(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(rec)
}

// DeleteAnalysis removes one persisted analysis record
// DELETE /analyses/:id
func (h *Handlers) DeleteAnalysis(c *fiber.Ctx) error {
	id := kernel.AnalysisID(c.Params("id"))
	if !id.IsValidUUID() {
		return analysis.ErrRecordNotFound().WithDetail("id", id.String())
	}

	if err := h.service.DeleteRecord(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListAnalyses pages through persisted analysis summaries
// GET /analyses?page=1&page_size=20
func (h *Handlers) ListAnalyses(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}

	page, err := h.service.ListRecords(c.Context(), pagination)
	if err != nil {
		return err
	}

	summaries := make([]analysis.RecordSummaryDTO, 0, len(page.Items))
	for i := range page.Items {
		summaries = append(summaries, analysis.NewRecordSummaryDTO(&page.Items[i]))
	}

	return c.JSON(analysis.PaginatedRecordsResponse{
		Items:      summaries,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

// archiveUpload stores the raw upload best-effort; archival failures never
// fail the analysis response
func (h *Handlers) archiveUpload(c *fiber.Ctx, report *analysis.Report, fileName string, fileBytes []byte) {
	path := h.archive.Join("uploads", report.ID.String(), fileName)
	if err := h.archive.WriteFileStream(c.Context(), path, bytes.NewReader(fileBytes)); err != nil {
		logx.Warnf("Failed to archive upload %s: %v", path, err)
	}
}
