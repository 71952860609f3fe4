package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateOrder controls how delimited date strings are read. Program
// spreadsheets disagree on this: TUPAD sheets write 25-12-2024, DOH and
// DSWD write 12/25/2024, so every Schema declares its order explicitly.
type DateOrder int

const (
	MonthFirst DateOrder = iota
	DayFirst
)

// Serial dates count days from this epoch (the 1900 date system).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateOrNull converts a raw cell value into an ISO YYYY-MM-DD string.
// Accepted shapes: a spreadsheet serial number (or a numeric string, which
// is what raw workbook cells yield), a time.Time, or a delimited string
// split on "-" or "/" read per order. Anything else degrades to nil; it
// never fails.
func DateOrNull(v any, order DateOrder) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case *string:
		if t == nil {
			return nil
		}
		return DateOrNull(*t, order)
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return isoPtr(t)
	case float64:
		return serialToDate(t)
	case float32:
		return serialToDate(float64(t))
	case int:
		return serialToDate(float64(t))
	case int64:
		return serialToDate(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if isoDateRe.MatchString(s) {
			if d, err := time.Parse("2006-01-02", s); err == nil {
				return isoPtr(d)
			}
			return nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return serialToDate(n)
		}
		return splitDate(s, order)
	default:
		return nil
	}
}

// maxDateSerial is 9999-12-31, the last day of the 1900 date system.
// Serials past it are not far-future dates, they are malformed cells
// (a DOB typed without separators reads as an eight-digit number) and
// must degrade to nil so MapRow records the cell.
const maxDateSerial = 2958465

func serialToDate(serial float64) *string {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 || serial > maxDateSerial {
		return nil
	}
	d := serialEpoch.AddDate(0, 0, int(serial))
	return isoPtr(d)
}

func splitDate(s string, order DateOrder) *string {
	parts := regexp.MustCompile(`[-/]`).Split(s, -1)
	if len(parts) != 3 {
		return nil
	}

	var day, month, year string
	if order == DayFirst {
		day, month, year = parts[0], parts[1], parts[2]
	} else {
		month, day, year = parts[0], parts[1], parts[2]
	}
	// Only month-first sheets abbreviate years; a two-digit year on a
	// day-first sheet is unparseable.
	if len(year) == 2 {
		if order != MonthFirst {
			return nil
		}
		year = "20" + year
	}

	d, err := time.Parse("2006-1-2", year+"-"+month+"-"+day)
	if err != nil {
		return nil
	}
	return isoPtr(d)
}

func isoPtr(t time.Time) *string {
	s := t.UTC().Format("2006-01-02")
	return &s
}

// Int coerces to an integer, truncating toward zero. Non-finite and
// non-numeric inputs become 0; there is no null case.
func Int(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(math.Trunc(t))
	case float32:
		return Int(float64(t))
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return Int(n)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Str stringifies and trims; nil becomes the empty string.
func Str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case *string:
		if t == nil {
			return ""
		}
		return strings.TrimSpace(*t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format("2006-01-02")
	default:
		return strings.TrimSpace(toString(t))
	}
}

func toString(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	return ""
}
