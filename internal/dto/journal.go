package dto

import (
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one proposed debit/credit line of a new entry.
// Amounts are decimal strings on the wire; binary floats never appear.
type CreateEntryLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to create a journal entry with its lines.
type CreateEntryRequest struct {
	Date        time.Time                `json:"date" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	EntryType   domain.EntryType         `json:"entryType" binding:"omitempty,oneof=MANUAL ADJUSTMENT OPENING"`
	PeriodID    *string                  `json:"periodID"` // Optional, but required for period closure checks
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for a single entry line.
type EntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	EntryType   domain.EntryType    `json:"entryType"`
	Status      domain.EntryStatus  `json:"status"`
	Posted      bool                `json:"posted"`
	PeriodID    string              `json:"periodID,omitempty"`
	InvoiceID   string              `json:"invoiceID,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is the paginated journal entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalEntryLine to EntryLineResponse DTO.
func ToEntryLineResponse(line *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:    line.LineID,
		AccountID: line.AccountID,
		LineNo:    line.LineNo,
		Debit:     line.Debit,
		Credit:    line.Credit,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		EntryType:   e.EntryType,
		Status:      e.Status,
		Posted:      e.Posted,
		PeriodID:    e.PeriodID,
		InvoiceID:   e.InvoiceID,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i, line := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&line)
		}
	}
	return resp
}
