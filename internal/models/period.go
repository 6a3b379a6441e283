package models

import "time"

// Period is a fiscal period (typically one per year). Entries may only be
// posted into an open period whose date range covers the entry date; both
// StartDate and EndDate are inclusive.
type Period struct {
	ID        int64     `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Closed    bool      `db:"closed" json:"closed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Covers reports whether d falls inside the period's inclusive date range.
// Only the calendar date matters, not the time of day.
func (p *Period) Covers(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(p.StartDate)) && !day.After(dateOnly(p.EndDate))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
