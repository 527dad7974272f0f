package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors the domain entry status for DB storage.
type EntryStatus string

// EntryType mirrors the domain entry type for DB storage.
type EntryType string

// JournalEntry is the DB representation of a journal entry header.
type JournalEntry struct {
	EntryID     string      `db:"entry_id"`
	EntryDate   time.Time   `db:"entry_date"`
	Description string      `db:"description"`
	EntryType   EntryType   `db:"entry_type"`
	Status      EntryStatus `db:"status"`
	Posted      bool        `db:"posted"`
	PeriodID    string      `db:"period_id"`  // Nullable
	InvoiceID   string      `db:"invoice_id"` // Nullable
	AuditFields
}

// JournalEntryLine is the DB representation of a single line in an entry.
// Amounts use NUMERIC(14,2); decimal.Decimal maps them without float rounding.
type JournalEntryLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	LineNo    int             `db:"line_no"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	AuditFields
}
