package domain

import (
	"strings"
	"time"
)

// TrackerFilter is the set of conditions a tracker must satisfy to be listed
// or exported. Zero-valued fields impose no condition; the supplied ones are
// combined with AND.
type TrackerFilter struct {
	Query       string    // case-insensitive substring of tracking_code or to_address.name
	Status      string    // exact current_status
	Carrier     string    // exact carrier
	CreatedFrom time.Time // created_at >= CreatedFrom
	CreatedTo   time.Time // created_at <= CreatedTo
}

// IsEmpty reports whether the filter matches every tracker.
func (f TrackerFilter) IsEmpty() bool {
	return f.Query == "" && f.Status == "" && f.Carrier == "" &&
		f.CreatedFrom.IsZero() && f.CreatedTo.IsZero()
}

// Matches evaluates the filter against a single tracker in memory.
func (f TrackerFilter) Matches(t *Tracker) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.TrackingCode), q) &&
			!strings.Contains(strings.ToLower(t.ToAddress.Name), q) {
			return false
		}
	}
	if f.Status != "" && string(t.CurrentStatus) != f.Status {
		return false
	}
	if f.Carrier != "" && t.Carrier != f.Carrier {
		return false
	}
	if !f.CreatedFrom.IsZero() && t.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if !f.CreatedTo.IsZero() && t.CreatedAt.After(f.CreatedTo) {
		return false
	}
	return true
}
