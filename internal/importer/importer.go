package importer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// DefaultBatchSize bounds per-transaction payload; the web client sends
// the same 200 rows per chunk request.
const DefaultBatchSize = 200

// ErrNoRows is returned when an upload contains nothing but empty rows.
var ErrNoRows = errors.New("no valid rows to insert")

type Importer struct {
	DB        *gorm.DB
	BatchSize int
}

// Result is the outcome of one upload operation. On a chunk failure the
// caller still receives the Result alongside the error so it can report
// how far the upload got.
type Result struct {
	Inserted int       `json:"inserted"`
	Chunks   int       `json:"chunks"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ChunkError wraps a failed chunk with the row range it covered. Rows
// are 1-based positions within the filtered upload. The database
// message is preserved verbatim; masking it would cost operators the
// only diagnostic they get.
type ChunkError struct {
	Chunk int
	First int
	Last  int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d (rows %d-%d): %v", e.Chunk, e.First, e.Last, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

func (im *Importer) batchSize() int {
	if im.BatchSize > 0 {
		return im.BatchSize
	}
	return DefaultBatchSize
}

// Import persists one upload's worth of rows for the given schema.
//
// Empty rows are dropped first, then every remaining row is validated
// against the schema before anything touches the database: a single
// malformed row aborts the whole submission. Surviving rows are split
// into fixed-size chunks, each inserted with one multi-row statement in
// its own transaction. A failing chunk is rolled back and ends the
// upload; chunks committed before it stay committed, and the returned
// Result says exactly how many rows landed. progress (optional) fires
// after each committed chunk with rows done vs. total.
func (im *Importer) Import(ctx context.Context, s Schema, rows []Row, progress func(done, total int)) (Result, error) {
	var res Result

	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r == nil || IsEmpty(r) {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return res, ErrNoRows
	}

	final := make([]Row, 0, len(kept))
	for i, r := range kept {
		n, err := s.Normalize(r)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", i+1, err)
		}
		final = append(final, n)
	}

	total := len(final)
	size := im.batchSize()

	for start := 0; start < total; start += size {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		end := start + size
		if end > total {
			end = total
		}
		chunk := final[start:end]

		records := make([]map[string]any, len(chunk))
		for i, r := range chunk {
			records[i] = map[string]any(r)
		}

		err := im.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Table(s.Table).Create(&records).Error
		})
		if err != nil {
			return res, &ChunkError{
				Chunk: res.Chunks + 1,
				First: start + 1,
				Last:  end,
				Err:   err,
			}
		}

		res.Inserted += len(chunk)
		res.Chunks++
		if progress != nil {
			progress(res.Inserted, total)
		}
	}

	return res, nil
}
