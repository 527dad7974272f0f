package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected server-side failure.
var ErrInternal = errors.New("internal error")

// Ledger error kinds. Every validation failure that crosses the service
// boundary wraps exactly one of these so the caller can map it to a message
// without inspecting error strings.
var (
	// ErrUnbalancedEntry indicates the debit and credit sums of a journal entry differ.
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

	// ErrPeriodClosed indicates a mutation was attempted against a closed accounting period.
	ErrPeriodClosed = errors.New("accounting period is closed")

	// ErrAlreadyApproved indicates an approval was attempted on an already approved entry or invoice.
	ErrAlreadyApproved = errors.New("already approved")

	// ErrUnpostedEntries indicates period closure is blocked by unposted journal entries.
	ErrUnpostedEntries = errors.New("period has unposted journal entries")

	// ErrChartIncomplete indicates no account of a required type exists in the chart of accounts.
	ErrChartIncomplete = errors.New("chart of accounts is missing a required account type")

	// ErrDuplicateInvoiceNumber indicates the invoice number is already taken.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")

	// ErrAccountInUse indicates deletion was attempted on an account referenced by journal entry lines.
	ErrAccountInUse = errors.New("account is referenced by journal entry lines")

	// ErrPeriodOverlap indicates the requested period date range overlaps an existing period.
	ErrPeriodOverlap = errors.New("accounting period overlaps an existing period")

	// ErrAlreadyClosed indicates closure was attempted on a period that is already closed.
	ErrAlreadyClosed = errors.New("accounting period is already closed")
)

// AppError wraps a lower-level failure with an HTTP-ish status code.
// Mostly produced by the repository layer for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
