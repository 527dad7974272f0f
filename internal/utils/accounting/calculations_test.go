package accounting_test

import (
	"testing"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(lineNo int, debit, credit string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineNo: lineNo,
		Debit:  decimal.RequireFromString(debit),
		Credit: decimal.RequireFromString(credit),
	}
}

func TestValidateEntryBalance_Balanced(t *testing.T) {
	lines := []domain.JournalEntryLine{
		line(1, "100.00", "0"),
		line(2, "0", "60.00"),
		line(3, "0", "40.00"),
	}
	require.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalEntryLine{
		line(1, "100.00", "0"),
		line(2, "0", "99.99"),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	assert.Contains(t, err.Error(), "100")
	assert.Contains(t, err.Error(), "99.99")
}

func TestValidateEntryBalance_TooFewLines(t *testing.T) {
	err := accounting.ValidateEntryBalance([]domain.JournalEntryLine{line(1, "10.00", "0")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntryBalance_NegativeAmount(t *testing.T) {
	lines := []domain.JournalEntryLine{
		line(1, "-10.00", "0"),
		line(2, "0", "-10.00"),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateAmountScale(t *testing.T) {
	require.NoError(t, accounting.ValidateAmountScale(decimal.RequireFromString("12.34")))
	assert.Error(t, accounting.ValidateAmountScale(decimal.RequireFromString("12.345")))
}
