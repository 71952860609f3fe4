package doh

import (
	"time"

	"congress-api/internal/importer"
)

// Applicant is one DOH medical-assistance request. The patient and the
// applicant are separate people; the applicant files on the patient's
// behalf, related per the relationship field. recommended_amount stays
// text because the sheets mix amounts with remarks.
type Applicant struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	Date                *string   `json:"date" gorm:"type:date"`
	Hospital            string    `json:"hospital" gorm:"size:150"`
	PatientLastname     string    `json:"patient_lastname" gorm:"size:100"`
	PatientFirstname    string    `json:"patient_firstname" gorm:"size:100"`
	PatientMiddlename   string    `json:"patient_middlename" gorm:"size:100"`
	PatientExtension    string    `json:"patient_extension" gorm:"size:20"`
	Birthday            *string   `json:"birthday" gorm:"type:date"`
	Age                 int       `json:"age"`
	Address             string    `json:"address" gorm:"size:255"`
	City                string    `json:"city" gorm:"size:100"`
	Province            string    `json:"province" gorm:"size:100"`
	Diagnosis           string    `json:"diagnosis" gorm:"size:255"`
	AssistanceType      string    `json:"assistance_type" gorm:"size:100"`
	RecommendedAmount   string    `json:"recommended_amount" gorm:"size:100"`
	ApplicantLastname   string    `json:"applicant_lastname" gorm:"size:100"`
	ApplicantFirstname  string    `json:"applicant_firstname" gorm:"size:100"`
	ApplicantMiddlename string    `json:"applicant_middlename" gorm:"size:100"`
	ApplicantExtension  string    `json:"applicant_extension" gorm:"size:20"`
	Relationship        string    `json:"relationship" gorm:"size:100"`
	ContactNumber       string    `json:"contact_number" gorm:"size:50"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Applicant) TableName() string {
	return "doh_applicants"
}

func fromRow(r importer.Row) Applicant {
	return Applicant{
		Date:                r.Date("date"),
		Hospital:            r.String("hospital"),
		PatientLastname:     r.String("patient_lastname"),
		PatientFirstname:    r.String("patient_firstname"),
		PatientMiddlename:   r.String("patient_middlename"),
		PatientExtension:    r.String("patient_extension"),
		Birthday:            r.Date("birthday"),
		Age:                 r.Int("age"),
		Address:             r.String("address"),
		City:                r.String("city"),
		Province:            r.String("province"),
		Diagnosis:           r.String("diagnosis"),
		AssistanceType:      r.String("assistance_type"),
		RecommendedAmount:   r.String("recommended_amount"),
		ApplicantLastname:   r.String("applicant_lastname"),
		ApplicantFirstname:  r.String("applicant_firstname"),
		ApplicantMiddlename: r.String("applicant_middlename"),
		ApplicantExtension:  r.String("applicant_extension"),
		Relationship:        r.String("relationship"),
		ContactNumber:       r.String("contact_number"),
	}
}

func nullableDate(d *string) any {
	if d == nil {
		return ""
	}
	return *d
}

// exportValues flattens an Applicant into schema column order.
func (a Applicant) exportValues() []any {
	return []any{
		nullableDate(a.Date), a.Hospital,
		a.PatientLastname, a.PatientFirstname, a.PatientMiddlename, a.PatientExtension,
		nullableDate(a.Birthday), a.Age, a.Address, a.City, a.Province,
		a.Diagnosis, a.AssistanceType, a.RecommendedAmount,
		a.ApplicantLastname, a.ApplicantFirstname, a.ApplicantMiddlename, a.ApplicantExtension,
		a.Relationship, a.ContactNumber,
	}
}
