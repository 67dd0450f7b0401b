package analysis

import (
	"context"

	"github.com/folioforge/ats/pkg/kernel"
)

// Extractor converts an uploaded resume file into an ExtractedDocument.
// Implementations enforce a size ceiling and an internal parse timeout, and
// fail closed: either a complete document is returned or an error, never
// partial output.
type Extractor interface {
	Extract(ctx context.Context, fileBytes []byte, declaredMIME string) (*ExtractedDocument, error)
}

// HistoryRepository persists completed analysis summaries
type HistoryRepository interface {
	Save(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id kernel.AnalysisID) (*Record, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Record], error)
	Delete(ctx context.Context, id kernel.AnalysisID) error
}
