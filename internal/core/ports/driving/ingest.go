package driving

import (
	"context"
	"io"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// IngestService handles bulk glossary imports
type IngestService interface {
	// ImportCSV streams a CSV export of the glossary into the term
	// store. Rows whose content hash matches the stored hash are
	// skipped; malformed rows are counted and skipped, never fatal.
	ImportCSV(ctx context.Context, r io.Reader) (*domain.ImportSummary, error)

	// ImportExcel reads an xlsx export through the same pipeline as
	// ImportCSV. The first sheet is the source; its first row is the
	// header.
	ImportExcel(ctx context.Context, r io.Reader) (*domain.ImportSummary, error)
}
