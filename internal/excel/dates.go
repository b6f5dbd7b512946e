package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// permissiveLayouts are tried in order after the configured strict layout.
// One column can legitimately mix several of these.
var permissiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"1/2/06 15:04",
	"02-Jan-06",
	"Jan 2, 2006",
}

// parseDate parses a raw spreadsheet cell into a time. The strict layout
// (when set) is tried first, then the permissive layout list, then Excel
// serial date numbers. An empty string or a value no path accepts is an
// error.
func parseDate(raw, strict string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}
	if strict != "" {
		if ts, err := time.Parse(strict, s); err == nil {
			return ts, nil
		}
	}
	for _, layout := range permissiveLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
