package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
	"github.com/xuri/excelize/v2"
)

// readSheet parses the first sheet of a workbook into raw cell rows.
// Raw cell values are requested so date cells arrive as their serial
// numbers instead of a display string in some locale.
func readSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data rows")
	}
	return rows, nil
}

// mapSheet runs the raw grid through the schema: header row 0 is always
// skipped, raw-blank rows are dropped, over-wide rows are rejected
// (they mean the sheet does not match the expected layout), and each
// surviving row is mapped. Row numbers in warnings are the sheet's own
// 1-based numbering.
func mapSheet(s Schema, grid [][]string) ([]Row, []Warning, error) {
	var (
		rows     []Row
		warnings []Warning
	)

	for i, cells := range grid[1:] {
		sheetRow := i + 2
		if rawRowBlank(cells) {
			continue
		}
		if len(cells) > s.Width() {
			return nil, nil, fmt.Errorf(
				"row %d has %d columns, expected at most %d for %s layout",
				sheetRow, len(cells), s.Width(), s.Program,
			)
		}

		raw := make([]any, len(cells))
		for j, c := range cells {
			raw[j] = c
		}

		row, w := s.MapRow(sheetRow, raw)
		rows = append(rows, row)
		warnings = append(warnings, w...)
	}

	return rows, warnings, nil
}

// ImportWorkbook is the server-side upload orchestrator: parse the
// workbook, map it, then drive the batch importer sequentially. progress
// (optional) receives a monotonically increasing percentage, reaching
// 100 only when every chunk committed. Cancellation via ctx takes
// effect between chunks.
func (im *Importer) ImportWorkbook(ctx context.Context, s Schema, r io.Reader, progress func(pct int)) (Result, error) {
	grid, err := readSheet(r)
	if err != nil {
		return Result{}, err
	}

	rows, warnings, err := mapSheet(s, grid)
	if err != nil {
		return Result{}, err
	}

	var onChunk func(done, total int)
	if progress != nil {
		last := 0
		onChunk = func(done, total int) {
			pct := done * 100 / total
			if pct > last {
				last = pct
				progress(pct)
			}
		}
	}

	res, err := im.Import(ctx, s, rows, onChunk)
	res.Warnings = warnings
	return res, err
}

// PreviewWorkbook maps up to limit rows without touching the database,
// returning them in schema column order so the operator sees the sheet
// the way it will be stored.
func PreviewWorkbook(s Schema, r io.Reader, limit int) ([]*orderedmap.OrderedMap, []Warning, error) {
	grid, err := readSheet(r)
	if err != nil {
		return nil, nil, err
	}

	rows, warnings, err := mapSheet(s, grid)
	if err != nil {
		return nil, nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*orderedmap.OrderedMap, len(rows))
	for i, row := range rows {
		m := orderedmap.New()
		for _, field := range s.Fields() {
			m.Set(field, row[field])
		}
		out[i] = m
	}
	return out, warnings, nil
}
