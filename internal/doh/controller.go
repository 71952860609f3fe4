package doh

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"congress-api/internal/importer"
	"congress-api/internal/logs"
	"congress-api/internal/programs"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type LogServicePort interface {
	Log(entry logs.SystemLog, metadata interface{}) error
}

type DohController struct {
	Service *DohService
	LS      LogServicePort
}

func (dc *DohController) log(c *gin.Context, level, action, message string, filename *string, metadata interface{}) {
	entry := logs.SystemLog{
		Level:    level,
		Service:  "doh",
		UserID:   programs.ContextUserID(c),
		Action:   action,
		Message:  message,
		Filename: filename,
		Programs: pq.StringArray{"doh"},
	}
	if err := dc.LS.Log(entry, metadata); err != nil {
		fmt.Printf("Failed to insert log: %v\n", err)
	}
}

func (dc *DohController) List(c *gin.Context) {
	applicants, err := dc.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applicants"})
		return
	}
	c.JSON(http.StatusOK, applicants)
}

func (dc *DohController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	applicant, err := dc.Service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Applicant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, applicant)
}

func (dc *DohController) Create(c *gin.Context) {
	var row importer.Row
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON input"})
		return
	}

	applicant, err := dc.Service.Create(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "INFO", "CREATE",
		fmt.Sprintf("Applicant added : %s, %s", applicant.PatientLastname, applicant.PatientFirstname), nil, nil)

	c.JSON(http.StatusOK, gin.H{"success": true, "id": applicant.ID})
}

func (dc *DohController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var row importer.Row
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON input"})
		return
	}

	applicant, err := dc.Service.Update(id, row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Applicant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "INFO", "UPDATE", fmt.Sprintf("Applicant %d updated", applicant.ID), nil, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Applicant updated successfully", "applicant": applicant})
}

func (dc *DohController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := dc.Service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Applicant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "WARN", "DELETE", fmt.Sprintf("Applicant %d deleted", id), nil, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Applicant deleted successfully"})
}

// Bulk ingests one pre-mapped chunk from the web client's chunked
// uploader.
func (dc *DohController) Bulk(c *gin.Context) {
	raw := c.PostForm("json")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	rows, errMsg := programs.DecodeBulkPayload(raw)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	res, err := dc.Service.BulkImport(c.Request.Context(), rows)
	if err != nil {
		programs.WriteImportError(c, err)
		return
	}

	dc.log(c, "INFO", "BULK_IMPORT",
		fmt.Sprintf("Bulk upload inserted %d rows", res.Inserted), nil,
		gin.H{"inserted": res.Inserted, "chunks": res.Chunks})

	c.JSON(http.StatusOK, gin.H{"message": "Bulk upload successful", "inserted": res.Inserted})
}

func (dc *DohController) Import(c *gin.Context) {
	data, filename, ok := programs.ReadWorkbookUpload(c)
	if !ok {
		return
	}

	res, archiveURL, err := dc.Service.ImportWorkbook(c.Request.Context(), data, filename)
	if err != nil {
		programs.WriteImportError(c, err)
		return
	}

	dc.log(c, "INFO", "IMPORT",
		fmt.Sprintf("Workbook %s imported, %d rows", filename, res.Inserted), &filename,
		gin.H{"inserted": res.Inserted, "chunks": res.Chunks, "warnings": len(res.Warnings)})

	out := gin.H{"message": "Import successful", "inserted": res.Inserted, "chunks": res.Chunks, "warnings": res.Warnings}
	if archiveURL != "" {
		out["archive"] = archiveURL
	}
	c.JSON(http.StatusOK, out)
}

func (dc *DohController) Preview(c *gin.Context) {
	data, _, ok := programs.ReadWorkbookUpload(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	rows, warnings, err := importer.PreviewWorkbook(Schema, bytes.NewReader(data), limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "warnings": warnings})
}

func (dc *DohController) Export(c *gin.Context) {
	applicants, err := dc.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records := make([][]any, len(applicants))
	for i, a := range applicants {
		records[i] = a.exportValues()
	}
	programs.WriteWorkbook(c, "doh_applicants.xlsx", Schema, records)
}

func (dc *DohController) Search(c *gin.Context) {
	filter := SearchFilter{
		Lastname:   c.Query("lastname"),
		Firstname:  c.Query("firstname"),
		Middlename: c.Query("middlename"),
		Extension:  c.Query("extension"),
		Birthday:   c.Query("birthday"),
	}

	applicants, err := dc.Service.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, applicants)
}
