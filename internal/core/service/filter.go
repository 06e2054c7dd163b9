package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

const dayLayout = "2006-01-02"

// endOfDay is the offset from midnight of the last representable millisecond
// of a day, the precision the store keeps timestamps at.
const endOfDay = 24*time.Hour - time.Millisecond

// BuildFilter turns raw query parameters into a TrackerFilter.
//
// startDate bounds created_at from 00:00:00.000 UTC of that day and endDate up
// to 23:59:59.999 UTC of that day, both inclusive. A date that cannot be
// parsed yields domain.ErrInvalidDate; no other input is rejected. An inverted
// range is kept as is and matches nothing.
func BuildFilter(q ports.TrackerQuery) (domain.TrackerFilter, error) {
	f := domain.TrackerFilter{
		Query:   cleanText(q.Query),
		Status:  cleanText(q.Status),
		Carrier: cleanText(q.Carrier),
	}

	if raw := strings.TrimSpace(q.StartDate); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return domain.TrackerFilter{}, fmt.Errorf("%w: startDate %q", domain.ErrInvalidDate, raw)
		}
		f.CreatedFrom = day
	}

	if raw := strings.TrimSpace(q.EndDate); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return domain.TrackerFilter{}, fmt.Errorf("%w: endDate %q", domain.ErrInvalidDate, raw)
		}
		f.CreatedTo = day.Add(endOfDay)
	}

	return f, nil
}

// parseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns midnight
// UTC of the calendar day it names.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
}

// cleanText trims s and replaces invalid UTF-8, which the store refuses in
// string and regex operands.
func cleanText(s string) string {
	return strings.ToValidUTF8(strings.TrimSpace(s), "\uFFFD")
}
