package csvbank

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// Store is the part of the question store the importer writes to.
type Store interface {
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, qs []question.Question) ([]question.Question, error)
}

// ImportResult reports what an import did.
type ImportResult struct {
	Imported int
	Skipped  []RowError
	Repaired []RowError // kept rows whose counters were clamped
}

// Importer loads CSV banks into a Store.
type Importer struct {
	store  Store
	logger *slog.Logger
}

// NewImporter creates an Importer. A nil logger discards output.
func NewImporter(store Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Importer{store: store, logger: logger}
}

// Import replaces the whole bank with the rows read from r, keeping the
// statistics columns. The store is cleared before r is parsed, so a fatal
// parse error leaves it empty.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	if err := im.store.DeleteAll(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}
	return im.load(ctx, r, true)
}

// SeedIfEmpty imports the bundled bank from r only when the store holds no
// questions. Statistics columns are ignored. The boolean reports whether
// seeding happened.
func (im *Importer) SeedIfEmpty(ctx context.Context, r io.Reader) (ImportResult, bool, error) {
	n, err := im.store.Count(ctx)
	if err != nil {
		return ImportResult{}, false, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		im.logger.Debug("seed skipped", "questions", n)
		return ImportResult{}, false, nil
	}
	res, err := im.load(ctx, r, false)
	if err != nil {
		return res, false, fmt.Errorf("seed: %w", err)
	}
	return res, true, nil
}

func (im *Importer) load(ctx context.Context, r io.Reader, withStats bool) (ImportResult, error) {
	var repaired []RowError
	rows, skipped, err := decode(r, withStats, func(re RowError) {
		im.logger.Warn("csv row counters repaired", "line", re.Line, "error", re.Err)
		repaired = append(repaired, re)
	})
	for _, s := range skipped {
		im.logger.Warn("csv row skipped", "line", s.Line, "error", s.Err)
	}
	if err != nil {
		im.logger.Error("csv import aborted", "error", err)
		return ImportResult{Skipped: skipped, Repaired: repaired}, err
	}

	res := ImportResult{Skipped: skipped, Repaired: repaired}
	if len(rows) == 0 {
		im.logger.Info("csv contained no questions", "skipped", len(skipped))
		return res, nil
	}
	inserted, err := im.store.InsertBatch(ctx, rows)
	if err != nil {
		return res, fmt.Errorf("insert %d questions: %w", len(rows), err)
	}
	res.Imported = len(inserted)
	im.logger.Info("csv imported", "imported", res.Imported, "skipped", len(skipped))
	return res, nil
}
