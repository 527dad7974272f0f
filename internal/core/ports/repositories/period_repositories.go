package repositories

import (
	"context"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data
type PeriodReader interface {
	// FindPeriodByID retrieves a period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodOverlapping returns any existing period whose date range
	// overlaps [start, end], or ErrNotFound when the range is free.
	FindPeriodOverlapping(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting period data
type PeriodWriter interface {
	// SavePeriod inserts a new period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// ClosePeriod flips the period to closed inside one transaction.
	// It locks the period row, fails with ErrAlreadyClosed when already
	// closed and with ErrUnpostedEntries when the period owns any entry with
	// posted = false. There is no reopen counterpart.
	ClosePeriod(ctx context.Context, periodID string, closedBy string, closedAt time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
