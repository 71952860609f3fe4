package dswd

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

type DswdController struct {
	Service *DswdService
	LS      LogServicePort
}

func (dc *DswdController) log(c *gin.Context, level, action, message string, filename *string, metadata interface{}) {
	entry := logs.SystemLog{
		Level:    level,
		Service:  "dswd",
		UserID:   programs.ContextUserID(c),
		Action:   action,
		Message:  message,
		Filename: filename,
		Programs: pq.StringArray{"dswd"},
	}
	if err := dc.LS.Log(entry, metadata); err != nil {
		fmt.Printf("Failed to insert log: %v\n", err)
	}
}

func (dc *DswdController) List(c *gin.Context) {
	records, err := dc.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (dc *DswdController) ListClaimed(c *gin.Context) {
	records, err := dc.Service.ListClaimed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (dc *DswdController) ListUnclaimed(c *gin.Context) {
	records, err := dc.Service.ListUnclaimed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (dc *DswdController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	rec, err := dc.Service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (dc *DswdController) Create(c *gin.Context) {
	var row importer.Row
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON input"})
		return
	}

	rec, err := dc.Service.Create(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "INFO", "CREATE",
		fmt.Sprintf("Record added : %s, %s", rec.Lastname, rec.Firstname), nil, nil)

	c.JSON(http.StatusOK, gin.H{"success": true, "id": rec.ID})
}

func (dc *DswdController) Update(c *gin.Context) {
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

	rec, err := dc.Service.Update(id, row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "INFO", "UPDATE", fmt.Sprintf("Record %d updated", rec.ID), nil, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Record updated successfully", "record": rec})
}

func (dc *DswdController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := dc.Service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "WARN", "DELETE", fmt.Sprintf("Record %d deleted", id), nil, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// UpdateStatus marks a batch of records by id. Matching by id replaced
// the old name-and-birthday lookup, which collided on common names.
func (dc *DswdController) UpdateStatus(c *gin.Context) {
	var input StatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rows or status missing"})
		return
	}

	updated, err := dc.Service.UpdateStatus(input.IDs, input.Status)
	if err != nil {
		if errors.Is(err, ErrMissingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rows or status missing"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dc.log(c, "INFO", "UPDATE_STATUS",
		fmt.Sprintf("%d records set to %s", updated, input.Status), nil,
		gin.H{"ids": input.IDs, "status": input.Status})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully updated %d rows to %s", updated, input.Status),
		"updated": updated,
	})
}

// Bulk ingests one pre-mapped chunk from the web client's chunked
// uploader.
func (dc *DswdController) Bulk(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"message": "Upload successful", "inserted": res.Inserted})
}

func (dc *DswdController) Import(c *gin.Context) {
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

func (dc *DswdController) Preview(c *gin.Context) {
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

func (dc *DswdController) Export(c *gin.Context) {
	records, err := dc.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	values := make([][]any, len(records))
	for i, rec := range records {
		values[i] = rec.exportValues()
	}
	programs.WriteWorkbook(c, "dswd_encoded.xlsx", Schema, values)
}

func (dc *DswdController) Search(c *gin.Context) {
	filter := SearchFilter{
		Lastname:   c.Query("lastname"),
		Firstname:  c.Query("firstname"),
		Middlename: c.Query("middlename"),
		Extension:  c.Query("extension"),
		DOB:        c.Query("birthday"),
	}

	records, err := dc.Service.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
