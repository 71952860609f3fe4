package dswd

import "congress-api/internal/importer"

// Schema fixes the DSWD encoding sheet layout. Columns 20-29 are the
// office-use block and are skipped. DSWD sheets write dates month-first
// (12/25/2024).
var Schema = importer.Schema{
	Program: "dswd",
	Table:   "dswd_encoded",
	Dates:   importer.MonthFirst,
	Columns: []importer.Column{
		{Field: "entered_date", Col: 0, Kind: importer.KindDate},
		{Field: "entered_by", Col: 1},
		{Field: "beneficiary_no", Col: 2},
		{Field: "date_accomplished", Col: 3, Kind: importer.KindDate},
		{Field: "region", Col: 4},
		{Field: "province", Col: 5},
		{Field: "city", Col: 6},
		{Field: "barangay", Col: 7},
		{Field: "district", Col: 8},
		{Field: "lastname", Col: 9},
		{Field: "firstname", Col: 10},
		{Field: "middlename", Col: 11},
		{Field: "extraname", Col: 12},
		{Field: "sex", Col: 13},
		{Field: "civil_status", Col: 14},
		{Field: "dob", Col: 15, Kind: importer.KindDate},
		{Field: "age", Col: 16, Kind: importer.KindInt},
		{Field: "mode_of_admission", Col: 17},
		{Field: "type_of_assistance1", Col: 18},
		{Field: "amount1", Col: 19},
		{Field: "beneficiary_category", Col: 30},
		{Field: "sub_category", Col: 31},
		{Field: "relationship", Col: 32},
		{Field: "lastname2", Col: 33},
		{Field: "firstname2", Col: 34},
		{Field: "middlename2", Col: 35},
		{Field: "extension", Col: 36},
		{Field: "sex2", Col: 37},
		{Field: "status2", Col: 38},
		{Field: "dob2", Col: 39, Kind: importer.KindDate},
		{Field: "age2", Col: 40, Kind: importer.KindInt},
		{Field: "contact2", Col: 41},
		{Field: "mode_of_assistance", Col: 42},
		{Field: "interviewer", Col: 43},
		{Field: "license_number", Col: 44},
	},
}
