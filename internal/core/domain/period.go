package domain

import "time"

// AccountingPeriod is a non-overlapping date range with an open/closed lifecycle.
// A period transitions open -> closed exactly once; there is no reopen.
type AccountingPeriod struct {
	PeriodID  string     `json:"periodID"` // Primary Key (UUID)
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"` // Inclusive; StartDate <= EndDate
	EndDate   time.Time  `json:"endDate"`   // Inclusive
	IsClosed  bool       `json:"isClosed"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	ClosedBy  string     `json:"closedBy,omitempty"` // UserID that closed the period
	AuditFields
}

// Contains reports whether d falls within the period's date range. The
// comparison is at day granularity, so a timestamp anywhere on the end
// date still counts as inside the period.
func (p AccountingPeriod) Contains(d time.Time) bool {
	day := d.UTC().Truncate(24 * time.Hour)
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}
