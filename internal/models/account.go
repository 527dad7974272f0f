package models

// AccountType mirrors the domain account type for DB storage.
type AccountType string

// Account is the DB representation of a chart-of-accounts row.
type Account struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	Description     string      `db:"description"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}
