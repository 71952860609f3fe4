package importer

import "fmt"

type Kind int

const (
	KindString Kind = iota
	KindDate
	KindInt
)

// Column binds one destination table column to a fixed spreadsheet
// column index and the normalizer applied to its cells.
type Column struct {
	Field string
	Col   int
	Kind  Kind
}

// Row is one mapped record, keyed by destination column name. Date
// values are either a YYYY-MM-DD string or nil, never anything else.
type Row map[string]any

// String reads a normalized string field. Only valid on rows that went
// through Normalize or MapRow.
func (r Row) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Date reads a normalized date field as a nullable ISO string.
func (r Row) Date(field string) *string {
	if s, ok := r[field].(string); ok {
		return &s
	}
	return nil
}

// Int reads a normalized int field.
func (r Row) Int(field string) int {
	n, _ := r[field].(int)
	return n
}

// Warning records a cell that degraded during normalization (for now
// only unparseable dates). The upload still proceeds; warnings are
// returned so an operator can review the affected rows.
type Warning struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Raw   string `json:"raw"`
	Note  string `json:"note"`
}

// Schema is the declarative per-program column map. The spreadsheet
// layout is positional, so the schema is the single place that layout
// is allowed to appear.
type Schema struct {
	Program string
	Table   string
	Dates   DateOrder
	Columns []Column
}

// Width is the number of spreadsheet columns the layout reaches into.
// Rows wider than this do not match the expected layout.
func (s Schema) Width() int {
	w := 0
	for _, c := range s.Columns {
		if c.Col+1 > w {
			w = c.Col + 1
		}
	}
	return w
}

// Fields returns destination column names in insert order.
func (s Schema) Fields() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Field
	}
	return out
}

// MapRow converts one raw spreadsheet row (header already stripped) into
// a named Row. Cells past the end of a short row read as empty. rowNum
// is only used to label warnings.
func (s Schema) MapRow(rowNum int, cells []any) (Row, []Warning) {
	row := make(Row, len(s.Columns))
	var warnings []Warning

	for _, c := range s.Columns {
		var cell any
		if c.Col < len(cells) {
			cell = cells[c.Col]
		}

		switch c.Kind {
		case KindDate:
			d := DateOrNull(cell, s.Dates)
			if d == nil {
				if raw := Str(cell); raw != "" {
					warnings = append(warnings, Warning{
						Row:   rowNum,
						Field: c.Field,
						Raw:   raw,
						Note:  "unparseable date, stored as null",
					})
				}
				row[c.Field] = nil
			} else {
				row[c.Field] = *d
			}
		case KindInt:
			row[c.Field] = Int(cell)
		default:
			row[c.Field] = Str(cell)
		}
	}

	return row, warnings
}

// Pick projects an arbitrary field-keyed map down to this schema's
// fields. Absent fields read as null, extra keys (id, created_at on a
// round-tripped record) are dropped, so API payloads can be fed to
// Normalize as-is.
func (s Schema) Pick(r Row) Row {
	out := make(Row, len(s.Columns))
	for _, c := range s.Columns {
		out[c.Field] = r[c.Field]
	}
	return out
}

// Normalize validates that r carries exactly this schema's fields and
// re-applies the normalizers. Manual form submissions and bulk chunks
// both pass through here, so the two paths cannot diverge.
func (s Schema) Normalize(r Row) (Row, error) {
	if len(r) != len(s.Columns) {
		return nil, fmt.Errorf("row has %d fields, want %d", len(r), len(s.Columns))
	}

	out := make(Row, len(s.Columns))
	for _, c := range s.Columns {
		v, ok := r[c.Field]
		if !ok {
			return nil, fmt.Errorf("row is missing field %q", c.Field)
		}
		switch c.Kind {
		case KindDate:
			if d := DateOrNull(v, s.Dates); d != nil {
				out[c.Field] = *d
			} else {
				out[c.Field] = nil
			}
		case KindInt:
			out[c.Field] = Int(v)
		default:
			out[c.Field] = Str(v)
		}
	}
	return out, nil
}

// Values returns r's values in insert order. r must already be
// normalized.
func (s Schema) Values(r Row) []any {
	out := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = r[c.Field]
	}
	return out
}

// IsEmpty reports whether every field is nil or a blank string. Any
// number counts as content — an age of 0 still makes a row worth
// keeping. Blank spreadsheet lines never get this far; they are
// dropped on the raw cells before mapping.
func IsEmpty(r Row) bool {
	for _, v := range r {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if Str(t) == "" {
				continue
			}
			return false
		default:
			return false
		}
	}
	return true
}

// rawRowBlank is the pre-mapping blank check on raw cells.
func rawRowBlank(cells []string) bool {
	for _, c := range cells {
		if Str(c) != "" {
			return false
		}
	}
	return true
}
