package doh

import "congress-api/internal/importer"

// Schema fixes the DOH sheet layout. Column 1 is a control number the
// hospital template keeps; it is not stored. DOH sheets write dates
// month-first (12/25/2024).
var Schema = importer.Schema{
	Program: "doh",
	Table:   "doh_applicants",
	Dates:   importer.MonthFirst,
	Columns: []importer.Column{
		{Field: "date", Col: 0, Kind: importer.KindDate},
		{Field: "hospital", Col: 2},
		{Field: "patient_lastname", Col: 3},
		{Field: "patient_firstname", Col: 4},
		{Field: "patient_middlename", Col: 5},
		{Field: "patient_extension", Col: 6},
		{Field: "birthday", Col: 7, Kind: importer.KindDate},
		{Field: "age", Col: 8, Kind: importer.KindInt},
		{Field: "address", Col: 9},
		{Field: "city", Col: 10},
		{Field: "province", Col: 11},
		{Field: "diagnosis", Col: 12},
		{Field: "assistance_type", Col: 13},
		{Field: "recommended_amount", Col: 14},
		{Field: "applicant_lastname", Col: 15},
		{Field: "applicant_firstname", Col: 16},
		{Field: "applicant_middlename", Col: 17},
		{Field: "applicant_extension", Col: 18},
		{Field: "relationship", Col: 19},
		{Field: "contact_number", Col: 20},
	},
}
