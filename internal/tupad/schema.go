package tupad

import "congress-api/internal/importer"

// Schema fixes the TUPAD sheet layout. Column 0 is a row counter the
// encoders keep in their template, so the record starts at column 1.
// TUPAD sheets write dates day-first (25-12-2024).
var Schema = importer.Schema{
	Program: "tupad",
	Table:   "tupad_applicants",
	Dates:   importer.DayFirst,
	Columns: []importer.Column{
		{Field: "firstname", Col: 1},
		{Field: "middlename", Col: 2},
		{Field: "lastname", Col: 3},
		{Field: "extension", Col: 4},
		{Field: "birthday", Col: 5, Kind: importer.KindDate},
		{Field: "barangay", Col: 6},
		{Field: "city_municipality", Col: 7},
		{Field: "province", Col: 8},
		{Field: "district", Col: 9},
		{Field: "type_of_id", Col: 10},
		{Field: "id_number", Col: 11},
		{Field: "contact_number", Col: 12},
		{Field: "bank_account_no", Col: 13},
		{Field: "type_of_beneficiary", Col: 14},
		{Field: "occupation", Col: 15},
		{Field: "sex", Col: 16},
		{Field: "civil_status", Col: 17},
		{Field: "age", Col: 18, Kind: importer.KindInt},
		{Field: "monthly_income", Col: 19},
		{Field: "dependent_name", Col: 20},
	},
}
