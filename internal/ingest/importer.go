// Package ingest implements bulk glossary imports from CSV and Excel
// exports.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driving"
)

// Verify interface compliance
var _ driving.IngestService = (*Importer)(nil)

const (
	// defaultBatchSize is how many terms are upserted per transaction
	defaultBatchSize = 500

	// fallbackCategory is assigned when a row has no category column
	fallbackCategory = "General"
)

// Importer streams glossary exports into the term store.
// Rows are matched to existing terms by name; a per-row content hash
// skips rows that have not changed since the last import. Only one
// import may run at a time per instance. CSV and Excel sources feed
// the same normalise/hash/batch pipeline, so a term imported from one
// format is recognised as unchanged when re-imported from the other.
type Importer struct {
	store       driven.TermStore
	normalisers driven.NormaliserRegistry
	cache       driven.ResultCache // optional; flushed after imports
	logger      *slog.Logger
	batchSize   int
	running     atomic.Bool
}

// NewImporter creates a new importer. cache may be nil when no result
// cache is configured.
func NewImporter(store driven.TermStore, normalisers driven.NormaliserRegistry, cache driven.ResultCache, logger *slog.Logger) *Importer {
	return &Importer{
		store:       store,
		normalisers: normalisers,
		cache:       cache,
		logger:      logger,
		batchSize:   defaultBatchSize,
	}
}

// columnMap locates the known fields in a header row.
// The first column is always the term name; the rest are matched by
// header text so column order does not matter.
type columnMap struct {
	shortDef int
	longDef  int
	category int
}

func mapColumns(header []string) columnMap {
	cm := columnMap{shortDef: -1, longDef: -1, category: -1}
	for i, h := range header {
		if i == 0 {
			continue
		}
		switch key := strings.ToLower(strings.TrimSpace(h)); {
		case key == "short_definition" || key == "summary":
			if cm.shortDef < 0 {
				cm.shortDef = i
			}
		case key == "definition" || key == "long_definition" || key == "overview" || key == "description":
			if cm.longDef < 0 {
				cm.longDef = i
			}
		case strings.Contains(key, "categor"):
			if cm.category < 0 {
				cm.category = i
			}
		}
	}
	return cm
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// contentHash fingerprints the imported fields of a row.
// Computed after normalisation so formatting-only source changes
// do not force re-imports.
func contentHash(name, shortDef, longDef, category string) string {
	h := sha256.New()
	for _, part := range []string{name, shortDef, longDef, category} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// recordStream yields one source row at a time. io.EOF ends the stream;
// any other error marks that row failed and the stream continues.
type recordStream func() ([]string, error)

// ImportCSV reads a glossary CSV and upserts its terms in batches.
// Malformed rows are counted as failed and skipped, never fatal.
// Returns ErrImportInProgress if another import is already running.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (*domain.ImportSummary, error) {
	if !i.running.CompareAndSwap(false, true) {
		return nil, domain.ErrImportInProgress
	}
	defer i.running.Store(false)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	return i.run(ctx, header, reader.Read)
}

// ImportExcel reads the first sheet of an xlsx workbook and upserts its
// terms through the same pipeline as ImportCSV. The first row is the
// header; fully blank rows are skipped.
// Returns ErrImportInProgress if another import is already running.
func (i *Importer) ImportExcel(ctx context.Context, r io.Reader) (*domain.ImportSummary, error) {
	if !i.running.CompareAndSwap(false, true) {
		return nil, domain.ErrImportInProgress
	}
	defer i.running.Store(false)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", domain.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row: %w", sheets[0], domain.ErrInvalidInput)
	}

	header, body := rows[0], rows[1:]
	next := func() ([]string, error) {
		for len(body) > 0 {
			record := body[0]
			body = body[1:]
			if emptyRecord(record) {
				continue
			}
			return record, nil
		}
		return nil, io.EOF
	}

	return i.run(ctx, header, next)
}

// run drives the shared pipeline: map the header, normalise and hash
// each record, skip unchanged terms, batch the rest, then flush the
// result cache so stale pages do not outlive the new data.
func (i *Importer) run(ctx context.Context, header []string, next recordStream) (*domain.ImportSummary, error) {
	start := time.Now()

	if len(header) < 2 {
		return nil, fmt.Errorf("header needs a name and at least one content column: %w", domain.ErrInvalidInput)
	}
	cols := mapColumns(header)

	known, err := i.store.ContentHashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content hashes: %w", err)
	}

	summary := &domain.ImportSummary{}
	categoryIDs := make(map[string]string)
	batch := make([]*domain.Term, 0, i.batchSize)
	now := time.Now()

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.store.SaveBatch(ctx, batch); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
		summary.Imported += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Processed++
			summary.Failed++
			i.logger.Warn("skipping malformed row", "error", err)
			continue
		}
		summary.Processed++

		name := i.normalisers.Apply("name", field(record, 0))
		if name == "" {
			summary.Failed++
			continue
		}

		shortDef := i.normalisers.Apply("short_definition", field(record, cols.shortDef))
		longDef := i.normalisers.Apply("long_definition", field(record, cols.longDef))
		category := field(record, cols.category)
		if category == "" {
			category = fallbackCategory
		}

		hash := contentHash(name, shortDef, longDef, category)
		if known[strings.ToLower(name)] == hash {
			summary.Skipped++
			continue
		}

		categoryID, ok := categoryIDs[category]
		if !ok {
			categoryID, err = i.store.SaveCategory(ctx, category)
			if err != nil {
				return nil, fmt.Errorf("save category %q: %w", category, err)
			}
			categoryIDs[category] = categoryID
		}

		batch = append(batch, &domain.Term{
			ID:              uuid.NewString(),
			Name:            name,
			ShortDefinition: shortDef,
			LongDefinition:  longDef,
			CategoryID:      categoryID,
			CategoryName:    category,
			ContentHash:     hash,
			CreatedAt:       now,
			UpdatedAt:       now,
		})

		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	if i.cache != nil && summary.Imported > 0 {
		if err := i.cache.Flush(ctx); err != nil {
			i.logger.Warn("failed to flush result cache after import", "error", err)
		}
	}

	summary.Categories = len(categoryIDs)
	summary.Took = time.Since(start)

	i.logger.Info("import complete",
		"processed", summary.Processed,
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"categories", summary.Categories,
		"took", summary.Took,
	)

	return summary, nil
}
