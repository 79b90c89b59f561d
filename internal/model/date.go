package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "01-02-2006"

var ErrBadDate = errors.New("invalid date")

// ParseDate reads mm-dd-yyyy (leading zeros optional) and rejects dates that
// do not exist on the calendar, such as 02-30-2024.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q: want mm-dd-yyyy", ErrBadDate, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || p == "" || strings.HasPrefix(p, "+") || strings.HasPrefix(p, "-") {
			return time.Time{}, fmt.Errorf("%w: %q: not a number", ErrBadDate, s)
		}
		n[i] = v
	}
	month, day, year := n[0], n[1], n[2]
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("%w: %q: year out of range", ErrBadDate, s)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q: month out of range", ErrBadDate, s)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow, so 02-30 comes back as 03-01
	if day < 1 || d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("%w: %q: day out of range", ErrBadDate, s)
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
