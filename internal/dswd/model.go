package dswd

import (
	"time"

	"congress-api/internal/importer"
)

// Record is one DSWD AICS encoding. Fields suffixed 2 describe the
// beneficiary when the client filed on someone else's behalf. amount1
// stays text because the sheets mix amounts with remarks. The encoding
// sheet leaves columns 20-29 for office use; they are never stored.
type Record struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	EnteredDate         *string   `json:"entered_date" gorm:"type:date"`
	EnteredBy           string    `json:"entered_by" gorm:"size:100"`
	BeneficiaryNo       string    `json:"beneficiary_no" gorm:"size:100"`
	DateAccomplished    *string   `json:"date_accomplished" gorm:"type:date"`
	Region              string    `json:"region" gorm:"size:100"`
	Province            string    `json:"province" gorm:"size:100"`
	City                string    `json:"city" gorm:"size:100"`
	Barangay            string    `json:"barangay" gorm:"size:100"`
	District            string    `json:"district" gorm:"size:100"`
	Lastname            string    `json:"lastname" gorm:"size:100"`
	Firstname           string    `json:"firstname" gorm:"size:100"`
	Middlename          string    `json:"middlename" gorm:"size:100"`
	Extraname           string    `json:"extraname" gorm:"size:20"`
	Sex                 string    `json:"sex" gorm:"size:20"`
	CivilStatus         string    `json:"civil_status" gorm:"size:50"`
	DOB                 *string   `json:"dob" gorm:"column:dob;type:date"`
	Age                 int       `json:"age"`
	ModeOfAdmission     string    `json:"mode_of_admission" gorm:"size:100"`
	TypeOfAssistance1   string    `json:"type_of_assistance1" gorm:"column:type_of_assistance1;size:100"`
	Amount1             string    `json:"amount1" gorm:"column:amount1;size:100"`
	BeneficiaryCategory string    `json:"beneficiary_category" gorm:"size:100"`
	SubCategory         string    `json:"sub_category" gorm:"size:100"`
	Relationship        string    `json:"relationship" gorm:"size:100"`
	Lastname2           string    `json:"lastname2" gorm:"column:lastname2;size:100"`
	Firstname2          string    `json:"firstname2" gorm:"column:firstname2;size:100"`
	Middlename2         string    `json:"middlename2" gorm:"column:middlename2;size:100"`
	Extension           string    `json:"extension" gorm:"size:20"`
	Sex2                string    `json:"sex2" gorm:"column:sex2;size:20"`
	Status2             string    `json:"status2" gorm:"column:status2;size:50"`
	DOB2                *string   `json:"dob2" gorm:"column:dob2;type:date"`
	Age2                int       `json:"age2" gorm:"column:age2"`
	Contact2            string    `json:"contact2" gorm:"column:contact2;size:50"`
	ModeOfAssistance    string    `json:"mode_of_assistance" gorm:"size:100"`
	Interviewer         string    `json:"interviewer" gorm:"size:100"`
	LicenseNumber       string    `json:"license_number" gorm:"size:100"`
	ApplicationStatus   string    `json:"application_status" gorm:"size:50"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Record) TableName() string {
	return "dswd_encoded"
}

func fromRow(r importer.Row) Record {
	return Record{
		EnteredDate:         r.Date("entered_date"),
		EnteredBy:           r.String("entered_by"),
		BeneficiaryNo:       r.String("beneficiary_no"),
		DateAccomplished:    r.Date("date_accomplished"),
		Region:              r.String("region"),
		Province:            r.String("province"),
		City:                r.String("city"),
		Barangay:            r.String("barangay"),
		District:            r.String("district"),
		Lastname:            r.String("lastname"),
		Firstname:           r.String("firstname"),
		Middlename:          r.String("middlename"),
		Extraname:           r.String("extraname"),
		Sex:                 r.String("sex"),
		CivilStatus:         r.String("civil_status"),
		DOB:                 r.Date("dob"),
		Age:                 r.Int("age"),
		ModeOfAdmission:     r.String("mode_of_admission"),
		TypeOfAssistance1:   r.String("type_of_assistance1"),
		Amount1:             r.String("amount1"),
		BeneficiaryCategory: r.String("beneficiary_category"),
		SubCategory:         r.String("sub_category"),
		Relationship:        r.String("relationship"),
		Lastname2:           r.String("lastname2"),
		Firstname2:          r.String("firstname2"),
		Middlename2:         r.String("middlename2"),
		Extension:           r.String("extension"),
		Sex2:                r.String("sex2"),
		Status2:             r.String("status2"),
		DOB2:                r.Date("dob2"),
		Age2:                r.Int("age2"),
		Contact2:            r.String("contact2"),
		ModeOfAssistance:    r.String("mode_of_assistance"),
		Interviewer:         r.String("interviewer"),
		LicenseNumber:       r.String("license_number"),
	}
}

func nullableDate(d *string) any {
	if d == nil {
		return ""
	}
	return *d
}

// exportValues flattens a Record into schema column order.
func (rec Record) exportValues() []any {
	return []any{
		nullableDate(rec.EnteredDate), rec.EnteredBy, rec.BeneficiaryNo,
		nullableDate(rec.DateAccomplished), rec.Region, rec.Province, rec.City,
		rec.Barangay, rec.District, rec.Lastname, rec.Firstname, rec.Middlename,
		rec.Extraname, rec.Sex, rec.CivilStatus, nullableDate(rec.DOB), rec.Age,
		rec.ModeOfAdmission, rec.TypeOfAssistance1, rec.Amount1,
		rec.BeneficiaryCategory, rec.SubCategory, rec.Relationship,
		rec.Lastname2, rec.Firstname2, rec.Middlename2, rec.Extension,
		rec.Sex2, rec.Status2, nullableDate(rec.DOB2), rec.Age2, rec.Contact2,
		rec.ModeOfAssistance, rec.Interviewer, rec.LicenseNumber,
	}
}

// StatusUpdateInput sets the claim status on a batch of records by id.
type StatusUpdateInput struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
}
