package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a single account in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Globally unique account code
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (adjacency list)
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`
	AuditFields
}
