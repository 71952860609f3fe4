package dswd

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"congress-api/config"
	"congress-api/internal/importer"
	"congress-api/internal/util"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrMissingStatus = errors.New("status is required")
)

type DswdService struct {
	DB  *gorm.DB
	CFG *config.Config
}

func (s *DswdService) List() ([]Record, error) {
	var out []Record
	if err := s.DB.Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListClaimed returns released records, newest first.
func (s *DswdService) ListClaimed() ([]Record, error) {
	var out []Record
	err := s.DB.Where("application_status = ?", "claimed").Order("id DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListUnclaimed returns everything not yet released. Bulk-imported rows
// carry no status at all, so null counts as unclaimed.
func (s *DswdService) ListUnclaimed() ([]Record, error) {
	var out []Record
	err := s.DB.Where("application_status IS NULL OR application_status <> ?", "claimed").
		Order("id DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DswdService) Get(id int) (*Record, error) {
	var rec Record
	if err := s.DB.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create shares the bulk path's normalizers. The claim status starts
// empty, same as a bulk-imported row.
func (s *DswdService) Create(row importer.Row) (*Record, error) {
	n, err := Schema.Normalize(Schema.Pick(row))
	if err != nil {
		return nil, err
	}
	rec := fromRow(n)
	if err := s.DB.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update overwrites the schema fields; the claim status is only touched
// through UpdateStatus.
func (s *DswdService) Update(id int, row importer.Row) (*Record, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	n, err := Schema.Normalize(Schema.Pick(row))
	if err != nil {
		return nil, err
	}
	updates := make(map[string]any, len(Schema.Columns))
	for _, f := range Schema.Fields() {
		updates[f] = n[f]
	}
	if err := s.DB.Model(&Record{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *DswdService) Delete(id int) error {
	res := s.DB.Delete(&Record{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets the claim status on a batch of records by id and
// reports how many matched. The status is free text ("claimed",
// "PULL-OUT", ...); payout runs flip hundreds of rows in one call.
func (s *DswdService) UpdateStatus(ids []uint, status string) (int64, error) {
	if status == "" {
		return 0, ErrMissingStatus
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.DB.Model(&Record{}).Where("id IN ?", ids).Update("application_status", status)
	return res.RowsAffected, res.Error
}

// SearchFilter matches on the client's name parts; DOB is an exact
// YYYY-MM-DD match. Empty values are no-ops.
type SearchFilter struct {
	Lastname   string
	Firstname  string
	Middlename string
	Extension  string
	DOB        string
}

func (s *DswdService) Search(f SearchFilter) ([]Record, error) {
	q := s.DB.Model(&Record{})
	if f.Lastname != "" {
		q = q.Where("lastname ILIKE ?", "%"+f.Lastname+"%")
	}
	if f.Firstname != "" {
		q = q.Where("firstname ILIKE ?", "%"+f.Firstname+"%")
	}
	if f.Middlename != "" {
		q = q.Where("middlename ILIKE ?", "%"+f.Middlename+"%")
	}
	if f.Extension != "" {
		q = q.Where("extraname ILIKE ?", "%"+f.Extension+"%")
	}
	if f.DOB != "" {
		q = q.Where("dob = ?", f.DOB)
	}

	var out []Record
	if err := q.Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DswdService) BulkImport(ctx context.Context, rows []importer.Row) (importer.Result, error) {
	picked := make([]importer.Row, len(rows))
	for i, r := range rows {
		picked[i] = Schema.Pick(r)
	}
	im := importer.Importer{DB: s.DB}
	return im.Import(ctx, Schema, picked, nil)
}

// ImportWorkbook archives the raw upload first when a bucket is
// configured, then runs the batch importer.
func (s *DswdService) ImportWorkbook(ctx context.Context, data []byte, filename string) (importer.Result, string, error) {
	archiveURL := ""
	if s.CFG != nil && s.CFG.BucketName != "" {
		object := util.ArchiveObjectName(Schema.Program, filename)
		url, _, err := util.ArchiveToGCS(ctx, s.CFG.BucketName, object, data, util.XLSXContentType)
		if err != nil {
			return importer.Result{}, "", fmt.Errorf("failed to archive workbook: %w", err)
		}
		archiveURL = url
	}

	im := importer.Importer{DB: s.DB}
	res, err := im.ImportWorkbook(ctx, Schema, bytes.NewReader(data), nil)
	return res, archiveURL, err
}
