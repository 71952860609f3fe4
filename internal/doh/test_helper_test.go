package doh

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

func setupRouter(svc *DohService, ls *mockLogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-UserID"); v != "" {
			id, _ := strconv.ParseFloat(v, 64)
			c.Set("userID", id)
		}
		c.Next()
	})

	dc := &DohController{Service: svc, LS: ls}
	r.GET("/doh", dc.List)
	r.GET("/doh/:id", dc.Get)
	r.POST("/doh", dc.Create)
	r.PUT("/doh/:id", dc.Update)
	r.DELETE("/doh/:id", dc.Delete)
	r.POST("/doh/bulk", dc.Bulk)
	r.POST("/doh/import", dc.Import)
	r.POST("/doh/preview", dc.Preview)
	r.GET("/doh/export", dc.Export)
	r.GET("/search/doh", dc.Search)
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
