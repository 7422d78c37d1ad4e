package spreadsheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout renders date-formatted numeric cells.
const DateLayout = "Mon Jan 02 15:04:05 MST 2006"

// CellKind is the closed set of cell shapes the parser distinguishes.
type CellKind int

const (
	KindOther CellKind = iota
	KindText
	KindNumeric
	KindBoolean
	KindFormula
)

func (k CellKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindFormula:
		return "formula"
	default:
		return "other"
	}
}

// cell is everything read from the sheet for one coordinate.
type cell struct {
	formula string
	typ     excelize.CellType
	raw     string
	isDate  bool
}

func (c cell) kind() CellKind {
	if c.formula != "" {
		return KindFormula
	}
	switch c.typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return KindText
	case excelize.CellTypeBool:
		return KindBoolean
	case excelize.CellTypeNumber, excelize.CellTypeDate:
		return KindNumeric
	case excelize.CellTypeUnset:
		// cells without a t attribute hold numbers
		if c.raw != "" {
			return KindNumeric
		}
	}
	return KindOther
}

func (c cell) value(date1904 bool) string {
	switch c.kind() {
	case KindText:
		return c.raw
	case KindNumeric:
		return numericString(c, date1904)
	case KindBoolean:
		b, err := strconv.ParseBool(c.raw)
		if err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case KindFormula:
		return strings.TrimPrefix(c.formula, "=")
	default:
		return ""
	}
}

func numericString(c cell, date1904 bool) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.raw), 64)
	if err != nil {
		// t="d" cells carry an ISO 8601 value instead of a serial number
		if c.typ == excelize.CellTypeDate {
			if t, ok := parseISODate(c.raw); ok {
				return t.UTC().Format(DateLayout)
			}
		}
		return c.raw
	}
	if c.isDate || c.typ == excelize.CellTypeDate {
		t, err := excelize.ExcelDateToTime(v, date1904)
		if err == nil {
			return t.UTC().Format(DateLayout)
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// builtin number formats that render as dates or times
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	return builtinDateFormats[numFmt]
}

// isDateFormatCode reports whether a custom format code contains date or time
// tokens outside quoted literals, escapes and bracketed sections.
func isDateFormatCode(code string) bool {
	// only the positive section decides
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	if strings.EqualFold(code, "general") {
		return false
	}

	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			// [h], [mm] and [ss] are elapsed-time tokens
			if end := strings.IndexByte(code[i:], ']'); end > 0 {
				inner := strings.ToLower(code[i+1 : i+end])
				if inner != "" && strings.Trim(inner, "hms") == "" {
					return true
				}
			}
			inBracket = true
		case ch == '\\', ch == '_', ch == '*':
			i++
		default:
			switch ch | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}
