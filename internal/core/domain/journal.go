package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies the origin of a journal entry.
type EntryType string

const (
	EntryManual     EntryType = "MANUAL"
	EntryInvoice    EntryType = "INVOICE"
	EntryAdjustment EntryType = "ADJUSTMENT"
	EntryOpening    EntryType = "OPENING"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Approved EntryStatus = "APPROVED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. The binding invariant is that the sum of line debits
// equals the sum of line credits, in exact decimal arithmetic.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`   // Primary Key (UUID)
	EntryDate   time.Time   `json:"entryDate"` // Date the event occurred
	Description string      `json:"description"`
	EntryType   EntryType   `json:"entryType"`
	Status      EntryStatus `json:"status"` // Default: Draft
	Posted      bool        `json:"posted"` // Set on approval; gates period closure
	PeriodID    string      `json:"periodID,omitempty"`  // Nullable FK -> accounting_periods
	InvoiceID   string      `json:"invoiceID,omitempty"` // Nullable FK -> invoices (set for INVOICE entries)
	AuditFields
	Lines []JournalEntryLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalEntryLine is a single debit or credit against one account within
// an entry. Exactly one of Debit/Credit is nonzero; both are always >= 0.
type JournalEntryLine struct {
	LineID    string          `json:"lineID"`  // Primary Key (UUID)
	EntryID   string          `json:"entryID"` // FK -> journal_entries (Not Null)
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"` // Insertion order within the entry
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	AuditFields
}
