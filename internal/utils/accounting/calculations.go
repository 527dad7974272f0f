package accounting

import (
	"fmt"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amountScale is the number of fractional digits allowed on any amount.
const amountScale = 2

// ValidateAmountScale rejects amounts that cannot be represented as
// fixed-point decimals with two fractional digits. Amounts are compared
// exactly throughout the ledger, so out-of-scale input is an error rather
// than something to round away.
func ValidateAmountScale(amount decimal.Decimal) error {
	if amount.Exponent() < -amountScale {
		return fmt.Errorf("amount %s has more than %d decimal places", amount.String(), amountScale)
	}
	return nil
}

// SumLines returns the debit and credit totals across the given lines.
func SumLines(lines []domain.JournalEntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateEntryBalance checks the core double-entry invariant over a full
// set of lines: sum(debit) must equal sum(credit) exactly, no epsilon.
// The check is entry-level; individual lines only need non-negative amounts.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines, got %d", apperrors.ErrValidation, len(lines))
	}

	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.LineNo)
		}
	}

	debits, credits := SumLines(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s but credits sum to %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// RunningBalances annotates lines (already ordered by entry date, then line
// insertion order) with a cumulative fold starting at zero:
// balance[i] = balance[i-1] + debit[i] - credit[i].
func RunningBalances(lines []domain.LedgerLine) []domain.LedgerLine {
	balance := decimal.Zero
	out := make([]domain.LedgerLine, len(lines))
	for i, line := range lines {
		balance = balance.Add(line.Debit).Sub(line.Credit)
		line.RunningBalance = balance
		out[i] = line
	}
	return out
}
