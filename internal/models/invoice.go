package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType mirrors the domain invoice type for DB storage.
type InvoiceType string

// Invoice is the DB representation of an invoice header.
type Invoice struct {
	InvoiceID        string          `db:"invoice_id"`
	InvoiceNumber    string          `db:"invoice_number"`
	InvoiceType      InvoiceType     `db:"invoice_type"`
	CounterpartyName string          `db:"counterparty_name"`
	InvoiceDate      time.Time       `db:"invoice_date"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	IsApproved       bool            `db:"is_approved"`
	PeriodID         string          `db:"period_id"` // Nullable
	AuditFields
}

// InvoiceItem is the DB representation of a single invoice line item.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    int64           `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	AuditFields
}
