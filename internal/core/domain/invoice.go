package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes sales from purchases.
type InvoiceType string

const (
	Sale     InvoiceType = "SALE"
	Purchase InvoiceType = "PURCHASE"
)

// Invoice represents a sale or purchase document. TotalAmount is derived
// from the current items and recomputed whenever items change; it is never
// independently authoritative.
type Invoice struct {
	InvoiceID        string          `json:"invoiceID"` // Primary Key (UUID)
	InvoiceNumber    string          `json:"invoiceNumber"` // Globally unique
	InvoiceType      InvoiceType     `json:"invoiceType"`
	CounterpartyName string          `json:"counterpartyName"` // Customer or vendor
	InvoiceDate      time.Time       `json:"invoiceDate"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	IsApproved       bool            `json:"isApproved"`
	PeriodID         string          `json:"periodID,omitempty"` // Nullable FK -> accounting_periods
	AuditFields
	Items []InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is a single line on an invoice. TotalPrice = Quantity * UnitPrice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`    // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices (Not Null)
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"` // Positive
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	AuditFields
}

// ComputeTotal returns the sum of the item totals. Callers persist the
// result explicitly after any item mutation rather than relying on a
// hidden write-path side effect.
func (inv Invoice) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
