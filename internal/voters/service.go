package voters

import "gorm.io/gorm"

type VoterService struct {
	DB *gorm.DB
}

// SearchFilter carries the name-part filters; empty parts are no-ops.
type SearchFilter struct {
	Lastname   string
	Firstname  string
	Middlename string
	Extension  string
}

func (s *VoterService) Search(f SearchFilter) ([]Voter, error) {
	q := s.DB.Model(&Voter{})
	if f.Lastname != "" {
		q = q.Where("voters_lastname ILIKE ?", "%"+f.Lastname+"%")
	}
	if f.Firstname != "" {
		q = q.Where("voters_firstname ILIKE ?", "%"+f.Firstname+"%")
	}
	if f.Middlename != "" {
		q = q.Where("voters_middlename ILIKE ?", "%"+f.Middlename+"%")
	}
	if f.Extension != "" {
		q = q.Where("voters_extension ILIKE ?", "%"+f.Extension+"%")
	}

	var out []Voter
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
