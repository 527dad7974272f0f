package services

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting period data
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific period by its ID.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)
}

// PeriodWriterSvc defines write operations for accounting period data
type PeriodWriterSvc interface {
	// CreatePeriod registers a new open period; the date range must not
	// overlap any existing period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)

	// ClosePeriod transitions a period from open to closed, provided every
	// entry it owns is posted. Closing is irreversible.
	ClosePeriod(ctx context.Context, periodID string, actorUserID string) (*domain.AccountingPeriod, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
