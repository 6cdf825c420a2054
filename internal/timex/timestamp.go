package timex

import (
	"fmt"
	"strings"
	"time"
)

// StorageLayout is how session timestamps are persisted: wall clock, no zone.
const StorageLayout = "2006-01-02 15:04:05"

// DisplayLayout is the dd/mm/yyyy HH:MM form used on reports.
const DisplayLayout = "02/01/2006 15:04"

var inputLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// FormatStorage renders t as a wall-clock storage string.
func FormatStorage(t time.Time) string {
	return t.Format(StorageLayout)
}

// Normalize converts t to the wall clock of loc at the resolution kept by
// StorageLayout. It fails when that wall clock reads back as a different
// instant, as in the repeated hour of a daylight saving fall-back.
func Normalize(t time.Time, loc *time.Location) (time.Time, error) {
	t = t.In(loc).Truncate(time.Second)
	back, err := ParseStorage(FormatStorage(t), loc)
	if err != nil {
		return time.Time{}, err
	}
	if !back.Equal(t) {
		return time.Time{}, fmt.Errorf("ambiguous local time %s in %s", FormatStorage(t), loc)
	}
	return t, nil
}

// ParseStorage reads a stored timestamp in loc. Fractional seconds and a
// 'T' separator are accepted for rows written by other tools.
func ParseStorage(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(strings.Replace(s, "T", " ", 1))
	t, err := time.ParseInLocation(StorageLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseInput reads a user supplied date+time. Zone-less values are taken as
// wall clock in loc; RFC 3339 values are converted into loc.
func ParseInput(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DD HH:MM", s)
}

// LoadLocation resolves a configured zone name; "" and "Local" mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
