package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Open marks a row or column bound that the caller left unspecified,
// e.g. the row bounds in "A:C" or the end of "B2:D".
const Open int64 = -1

// Default extents substituted when a parsed range is open on a dimension
// and the target request needs a bounded rectangle.
const (
	DefaultRowCount    int64 = 1000
	DefaultColumnCount int64 = 26
)

// Range is a parsed A1 reference with exact zero-based, half-open bounds.
// A bound of Open means the dimension was not constrained by the caller.
type Range struct {
	Sheet    string
	StartRow int64
	EndRow   int64
	StartCol int64
	EndCol   int64
}

// ColumnIndex converts a bijective base-26 column reference ("A", "Z",
// "AA", ...) to a zero-based column index.
func ColumnIndex(letters string) (int64, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidColumn)
	}
	var idx int64
	for _, r := range letters {
		switch {
		case r >= 'A' && r <= 'Z':
			idx = idx*26 + int64(r-'A') + 1
		case r >= 'a' && r <= 'z':
			idx = idx*26 + int64(r-'a') + 1
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, letters)
		}
	}
	return idx - 1, nil
}

// ColumnLetters converts a zero-based column index back to its A1 letters.
func ColumnLetters(idx int64) string {
	if idx < 0 {
		return ""
	}
	var b []byte
	n := idx + 1
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// ParseRange parses an A1 reference such as "Sheet1!A1:B10", "'My
// Sheet'!A:C", "Data!B2" or a bare "A1:D4". A reference consisting of
// only a sheet name ("Sheet1") spans the whole sheet. Bounds are
// zero-based and half-open; unconstrained dimensions are Open.
func ParseRange(ref string) (Range, error) {
	if ref == "" {
		return Range{}, fmt.Errorf("%w: empty reference", ErrInvalidRange)
	}

	sheet, cells, explicit := splitSheet(ref)
	r := Range{Sheet: sheet, StartRow: Open, EndRow: Open, StartCol: Open, EndCol: Open}
	if cells == "" {
		// "Sheet1!" names a sheet but promises cells it never gives.
		if sheet == "" || explicit {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
		}
		return r, nil
	}

	start, end, found := strings.Cut(cells, ":")
	sCol, sRow, err := parseCell(start)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	if !found {
		// Single cell: both dimensions must be present.
		if sCol == Open || sRow == Open {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
		}
		r.StartCol, r.EndCol = sCol, sCol+1
		r.StartRow, r.EndRow = sRow, sRow+1
		return r, nil
	}

	eCol, eRow, err := parseCell(end)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}

	r.StartCol = sCol
	r.StartRow = sRow
	if eCol != Open {
		r.EndCol = eCol + 1
	}
	if eRow != Open {
		r.EndRow = eRow + 1
	}
	// "A:C" leaves rows open on both sides; normalise missing starts to 0.
	if r.StartCol == Open && r.EndCol != Open {
		r.StartCol = 0
	}
	if r.StartRow == Open && r.EndRow != Open {
		r.StartRow = 0
	}
	if r.StartCol == Open && r.StartRow == Open {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	return r, nil
}

// SheetName returns the sheet component of an A1 reference, or fallback
// when the reference names no sheet.
func SheetName(ref, fallback string) string {
	sheet, _, _ := splitSheet(ref)
	if sheet == "" {
		return fallback
	}
	return sheet
}

// Bounded returns a copy with Open bounds replaced: starts become 0 and
// ends become the default extents. Used when a request needs an exact
// rectangle but the caller gave an open-ended range.
func (r Range) Bounded() Range {
	if r.StartRow == Open {
		r.StartRow = 0
	}
	if r.StartCol == Open {
		r.StartCol = 0
	}
	if r.EndRow == Open {
		r.EndRow = r.StartRow + DefaultRowCount
	}
	if r.EndCol == Open {
		r.EndCol = r.StartCol + DefaultColumnCount
	}
	return r
}

// splitSheet separates the optional sheet component from the cell
// component, stripping single quotes around quoted sheet names. explicit
// reports whether the reference carried a "!" separator.
func splitSheet(ref string) (sheet, cells string, explicit bool) {
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		return unquoteSheet(ref[:i]), ref[i+1:], true
	}
	// Without a separator the reference is cells only when it cannot be
	// a sheet name: a complete cell like "B10", or a range whose first
	// corner parses as one. "Summary", "Sheet1" and "2024" name sheets.
	if isCell(ref) {
		return "", ref, false
	}
	if s, _, ok := strings.Cut(ref, ":"); ok {
		if _, _, err := parseCell(s); err == nil {
			return "", ref, false
		}
	}
	return unquoteSheet(ref), "", false
}

// isCell reports whether s is a complete bare cell reference, column
// letters followed by a row number. Columns run out at "ZZZ"; a longer
// letter run is a sheet name.
func isCell(s string) bool {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i > 3 || i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// parseCell parses one corner of a range, e.g. "B10", "B" or "10".
// Absent components are Open. Row numbers are 1-based in A1 notation and
// returned zero-based.
func parseCell(s string) (col, row int64, err error) {
	col, row = Open, Open
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty cell", ErrInvalidRange)
	}
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i > 0 {
		col, err = ColumnIndex(s[:i])
		if err != nil {
			return 0, 0, err
		}
	}
	if i < len(s) {
		n, err := strconv.ParseInt(s[i:], 10, 64)
		if err != nil || n < 1 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		row = n - 1
	}
	return col, row, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
