package voters

// Voter is one row of the COMELEC voters list, loaded out of band. The
// table is read-only reference data: program records are cross-checked
// against it by name at query time, never linked by key.
type Voter struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Lastname   string `json:"voters_lastname" gorm:"column:voters_lastname;size:100"`
	Firstname  string `json:"voters_firstname" gorm:"column:voters_firstname;size:100"`
	Middlename string `json:"voters_middlename" gorm:"column:voters_middlename;size:100"`
	Extension  string `json:"voters_extension" gorm:"column:voters_extension;size:20"`
}

func (Voter) TableName() string {
	return "voters_list"
}
