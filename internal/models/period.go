package models

import "time"

// AccountingPeriod is the DB representation of an accounting period row.
type AccountingPeriod struct {
	PeriodID  string     `db:"period_id"`
	Name      string     `db:"name"`
	StartDate time.Time  `db:"start_date"`
	EndDate   time.Time  `db:"end_date"`
	IsClosed  bool       `db:"is_closed"`
	ClosedAt  *time.Time `db:"closed_at"` // Nullable
	ClosedBy  string     `db:"closed_by"` // Nullable
	AuditFields
}
