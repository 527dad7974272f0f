package dto

import (
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLineResponse is one account ledger line with its running balance.
type LedgerLineResponse struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse is the full ledger of one account.
type AccountLedgerResponse struct {
	AccountID string               `json:"accountID"`
	Lines     []LedgerLineResponse `json:"lines"`
}

// TrialBalanceRowResponse is one aggregated account row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountID"`
	AccountCode string             `json:"accountCode"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`
}

// TrialBalanceResponse is the system-wide trial balance. TotalDebit and
// TotalCredit are equal whenever every persisted entry balances.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// ToLedgerLineResponse converts a domain.LedgerLine to LedgerLineResponse DTO.
func ToLedgerLineResponse(line *domain.LedgerLine) LedgerLineResponse {
	return LedgerLineResponse{
		LineID:         line.LineID,
		EntryID:        line.EntryID,
		EntryDate:      line.EntryDate,
		Description:    line.Description,
		Debit:          line.Debit,
		Credit:         line.Credit,
		RunningBalance: line.RunningBalance,
	}
}

// ToTrialBalanceResponse converts trial balance rows to the response DTO,
// summing both columns for the footer totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Rows:        make([]TrialBalanceRowResponse, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: row.AccountType,
			TotalDebit:  row.TotalDebit,
			TotalCredit: row.TotalCredit,
		}
		resp.TotalDebit = resp.TotalDebit.Add(row.TotalDebit)
		resp.TotalCredit = resp.TotalCredit.Add(row.TotalCredit)
	}
	return resp
}
