package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one journal entry line projected onto a single account,
// annotated with the running balance after applying it. The balance is a
// cumulative fold over the stored lines (balance += debit - credit) and is
// recomputed on every query, never cached.
type LedgerLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	LineNo         int             `json:"lineNo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// TrialBalanceRow aggregates all debits and credits for one account.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}
