package tupad

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

var ErrNotFound = errors.New("applicant not found")

type TupadService struct {
	DB  *gorm.DB
	CFG *config.Config
}

func (s *TupadService) List() ([]Applicant, error) {
	var out []Applicant
	if err := s.DB.Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TupadService) Get(id int) (*Applicant, error) {
	var a Applicant
	if err := s.DB.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create runs the manual form submission through the same normalizers
// the bulk path uses, so a hand-typed record and an imported one can
// never diverge in shape.
func (s *TupadService) Create(row importer.Row) (*Applicant, error) {
	n, err := Schema.Normalize(Schema.Pick(row))
	if err != nil {
		return nil, err
	}
	a := fromRow(n)
	if err := s.DB.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Update overwrites every schema field; absent fields in the payload
// become null/zero rather than being skipped.
func (s *TupadService) Update(id int, row importer.Row) (*Applicant, error) {
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
	if err := s.DB.Model(&Applicant{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *TupadService) Delete(id int) error {
	res := s.DB.Delete(&Applicant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchFilter carries the name-part filters; empty parts are no-ops.
type SearchFilter struct {
	Lastname   string
	Firstname  string
	Middlename string
	Extension  string
}

func (s *TupadService) Search(f SearchFilter) ([]Applicant, error) {
	q := s.DB.Model(&Applicant{})
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
		q = q.Where("extension ILIKE ?", "%"+f.Extension+"%")
	}

	var out []Applicant
	if err := q.Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// BulkImport persists one pre-mapped chunk. The web client posts rows
// already keyed by field name, so they only need projecting before the
// importer takes over.
func (s *TupadService) BulkImport(ctx context.Context, rows []importer.Row) (importer.Result, error) {
	picked := make([]importer.Row, len(rows))
	for i, r := range rows {
		picked[i] = Schema.Pick(r)
	}
	im := importer.Importer{DB: s.DB}
	return im.Import(ctx, Schema, picked, nil)
}

// ImportWorkbook runs the whole workbook server-side. The raw upload is
// archived to GCS first when a bucket is configured, so the original
// sheet survives even an import that fails mid-way.
func (s *TupadService) ImportWorkbook(ctx context.Context, data []byte, filename string) (importer.Result, string, error) {
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
