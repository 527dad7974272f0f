package dto

import (
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest is one proposed line item of a new invoice.
type CreateInvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create an invoice with its items.
type CreateInvoiceRequest struct {
	InvoiceNumber    string                     `json:"invoiceNumber" binding:"required"`
	InvoiceType      domain.InvoiceType         `json:"invoiceType" binding:"required,oneof=SALE PURCHASE"`
	CounterpartyName string                     `json:"counterpartyName" binding:"required"`
	InvoiceDate      time.Time                  `json:"invoiceDate" binding:"required"`
	PeriodID         *string                    `json:"periodID"`
	Items            []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AddInvoiceItemRequest defines the data needed to append one item to an invoice.
type AddInvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// InvoiceItemResponse defines the data returned for an invoice item.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID        string                `json:"invoiceID"`
	InvoiceNumber    string                `json:"invoiceNumber"`
	InvoiceType      domain.InvoiceType    `json:"invoiceType"`
	CounterpartyName string                `json:"counterpartyName"`
	InvoiceDate      time.Time             `json:"invoiceDate"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	IsApproved       bool                  `json:"isApproved"`
	PeriodID         string                `json:"periodID,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	Items            []InvoiceItemResponse `json:"items,omitempty"`
}

// ListInvoicesParams holds parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListInvoicesResponse is the paginated invoice listing.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to InvoiceItemResponse DTO.
func ToInvoiceItemResponse(item *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:      item.ItemID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:        inv.InvoiceID,
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceType:      inv.InvoiceType,
		CounterpartyName: inv.CounterpartyName,
		InvoiceDate:      inv.InvoiceDate,
		TotalAmount:      inv.TotalAmount,
		IsApproved:       inv.IsApproved,
		PeriodID:         inv.PeriodID,
		CreatedAt:        inv.CreatedAt,
		CreatedBy:        inv.CreatedBy,
	}
	if len(inv.Items) > 0 {
		resp.Items = make([]InvoiceItemResponse, len(inv.Items))
		for i, item := range inv.Items {
			resp.Items[i] = ToInvoiceItemResponse(&item)
		}
	}
	return resp
}
