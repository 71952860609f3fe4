package tupad

import (
	"time"

	"congress-api/internal/importer"
)

// Applicant is one TUPAD beneficiary record. Dates are stored as
// nullable YYYY-MM-DD strings; monthly_income stays text because the
// sheets mix amounts with remarks like "none".
type Applicant struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Firstname         string    `json:"firstname" gorm:"size:100"`
	Middlename        string    `json:"middlename" gorm:"size:100"`
	Lastname          string    `json:"lastname" gorm:"size:100"`
	Extension         string    `json:"extension" gorm:"size:20"`
	Birthday          *string   `json:"birthday" gorm:"type:date"`
	Barangay          string    `json:"barangay" gorm:"size:100"`
	CityMunicipality  string    `json:"city_municipality" gorm:"column:city_municipality;size:100"`
	Province          string    `json:"province" gorm:"size:100"`
	District          string    `json:"district" gorm:"size:100"`
	TypeOfID          string    `json:"type_of_id" gorm:"column:type_of_id;size:100"`
	IDNumber          string    `json:"id_number" gorm:"column:id_number;size:100"`
	ContactNumber     string    `json:"contact_number" gorm:"size:50"`
	BankAccountNo     string    `json:"bank_account_no" gorm:"size:100"`
	TypeOfBeneficiary string    `json:"type_of_beneficiary" gorm:"size:100"`
	Occupation        string    `json:"occupation" gorm:"size:100"`
	Sex               string    `json:"sex" gorm:"size:20"`
	CivilStatus       string    `json:"civil_status" gorm:"size:50"`
	Age               int       `json:"age"`
	MonthlyIncome     string    `json:"monthly_income" gorm:"size:100"`
	DependentName     string    `json:"dependent_name" gorm:"size:150"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Applicant) TableName() string {
	return "tupad_applicants"
}

// fromRow builds an Applicant from a normalized row.
func fromRow(r importer.Row) Applicant {
	return Applicant{
		Firstname:         r.String("firstname"),
		Middlename:        r.String("middlename"),
		Lastname:          r.String("lastname"),
		Extension:         r.String("extension"),
		Birthday:          r.Date("birthday"),
		Barangay:          r.String("barangay"),
		CityMunicipality:  r.String("city_municipality"),
		Province:          r.String("province"),
		District:          r.String("district"),
		TypeOfID:          r.String("type_of_id"),
		IDNumber:          r.String("id_number"),
		ContactNumber:     r.String("contact_number"),
		BankAccountNo:     r.String("bank_account_no"),
		TypeOfBeneficiary: r.String("type_of_beneficiary"),
		Occupation:        r.String("occupation"),
		Sex:               r.String("sex"),
		CivilStatus:       r.String("civil_status"),
		Age:               r.Int("age"),
		MonthlyIncome:     r.String("monthly_income"),
		DependentName:     r.String("dependent_name"),
	}
}

// exportValues flattens an Applicant into schema column order for the
// xlsx export. Null birthdays export as empty cells.
func (a Applicant) exportValues() []any {
	birthday := ""
	if a.Birthday != nil {
		birthday = *a.Birthday
	}
	return []any{
		a.Firstname, a.Middlename, a.Lastname, a.Extension, birthday,
		a.Barangay, a.CityMunicipality, a.Province, a.District,
		a.TypeOfID, a.IDNumber, a.ContactNumber, a.BankAccountNo,
		a.TypeOfBeneficiary, a.Occupation, a.Sex, a.CivilStatus,
		a.Age, a.MonthlyIncome, a.DependentName,
	}
}
