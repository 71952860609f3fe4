// Package programs holds the request plumbing shared by the program
// record APIs (tupad, doh, dswd): chunked bulk payload decoding,
// workbook uploads, importer error mapping and xlsx export.
package programs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"congress-api/internal/importer"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ContextUserID reads the authenticated user id the auth middleware put
// on the context. Nil when the context carries none.
func ContextUserID(c *gin.Context) *uint {
	v, ok := c.Get("userID")
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	uid := uint(f)
	return &uid
}

// DecodeBulkPayload parses the `json` form field of a bulk request. The
// returned message distinguishes malformed JSON from a well-formed
// non-array so the client can tell which bug it has; it is empty on
// success.
func DecodeBulkPayload(raw string) ([]importer.Row, string) {
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, "Invalid JSON payload"
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, "Payload must be an array"
	}

	rows := make([]importer.Row, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, "Invalid JSON payload"
		}
		rows = append(rows, importer.Row(m))
	}
	return rows, ""
}

// WriteImportError maps importer failures onto the wire contract: an
// all-empty upload is the client's fault, a failed chunk surfaces the
// database's own message verbatim alongside how many rows landed before
// it.
func WriteImportError(c *gin.Context, err error) {
	if errors.Is(err, importer.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid rows to insert"})
		return
	}
	var ce *importer.ChunkError
	if errors.As(err, &ce) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ce.Err.Error(), "inserted": ce.First - 1})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// ReadWorkbookUpload pulls the `file` part of a multipart upload into
// memory. On failure it writes the 400 itself and returns ok=false.
func ReadWorkbookUpload(c *gin.Context) (data []byte, filename string, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return nil, "", false
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return nil, "", false
	}
	defer src.Close()

	data, err = io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return nil, "", false
	}
	return data, fh.Filename, true
}

// WriteWorkbook streams records as an xlsx attachment laid out at the
// schema's own column positions, so an export feeds straight back into
// the import. records must be in schema column order.
func WriteWorkbook(c *gin.Context, filename string, s importer.Schema, records [][]any) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, s.Width())
	for i := range header {
		header[i] = ""
	}
	for _, col := range s.Columns {
		header[col.Col] = col.Field
	}
	_ = f.SetSheetRow(sheet, "A1", &header)

	for i, vals := range records {
		row := make([]any, s.Width())
		for j := range row {
			row[j] = ""
		}
		for j, col := range s.Columns {
			row[col.Col] = vals[j]
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		fmt.Printf("Failed to stream export: %v\n", err)
	}
}
