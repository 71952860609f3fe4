package dswd

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"congress-api/internal/logs"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type mockLogService struct {
	entries []logs.SystemLog
}

func (m *mockLogService) Log(entry logs.SystemLog, metadata interface{}) error {
	m.entries = append(m.entries, entry)
	return nil
}

func setupRouter(svc *DswdService, ls *mockLogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-UserID"); v != "" {
			id, _ := strconv.ParseFloat(v, 64)
			c.Set("userID", id)
		}
		c.Next()
	})

	dc := &DswdController{Service: svc, LS: ls}
	r.GET("/dswd", dc.List)
	r.GET("/dswd/claimed", dc.ListClaimed)
	r.GET("/dswd/unclaimed", dc.ListUnclaimed)
	r.GET("/dswd/:id", dc.Get)
	r.POST("/dswd", dc.Create)
	r.PUT("/dswd/:id", dc.Update)
	r.DELETE("/dswd/:id", dc.Delete)
	r.POST("/dswd/status", dc.UpdateStatus)
	r.POST("/dswd/bulk", dc.Bulk)
	r.POST("/dswd/import", dc.Import)
	r.POST("/dswd/preview", dc.Preview)
	r.GET("/dswd/export", dc.Export)
	r.GET("/search/dswd", dc.Search)
	return r
}

func sheetWithRows(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func multipartJSON(t *testing.T, payload string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("json", payload); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-UserID", "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(r *gin.Engine, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-UserID", "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}
