package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
)

// periodService provides accounting period lifecycle operations.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new PeriodSvcFacade backed by the given repository.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod registers a new open period. The date range must be well
// formed and must not overlap any existing period.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	start := req.StartDate.UTC().Truncate(24 * time.Hour)
	end := req.EndDate.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end date %s precedes start date %s",
			apperrors.ErrValidation, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	existing, err := s.periodRepo.FindPeriodOverlapping(ctx, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for overlapping periods: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: range overlaps period %s (%s to %s)",
			apperrors.ErrPeriodOverlap, existing.Name,
			existing.StartDate.Format("2006-01-02"), existing.EndDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsClosed:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "failed to save accounting period", slog.String("periodID", period.PeriodID))
		return nil, fmt.Errorf("failed to save accounting period: %w", err)
	}

	s.LogInfo(ctx, "accounting period created",
		slog.String("periodID", period.PeriodID),
		slog.String("name", period.Name),
	)
	return &period, nil
}

// ClosePeriod transitions a period from open to closed. The repository
// re-checks the closed flag and the unposted-entry count under a row lock,
// so concurrent closes and concurrent entry creation serialize correctly.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, actorUserID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrAlreadyClosed, periodID)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, actorUserID, now); err != nil {
		s.LogError(ctx, err, "failed to close accounting period", slog.String("periodID", periodID))
		return nil, err
	}

	period.IsClosed = true
	period.ClosedAt = &now
	period.ClosedBy = actorUserID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorUserID
	s.LogInfo(ctx, "accounting period closed",
		slog.String("periodID", periodID),
		slog.String("closedBy", actorUserID),
	)
	return period, nil
}

// GetPeriodByID retrieves a specific period by its ID.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// ListPeriods retrieves all periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	return s.periodRepo.ListPeriods(ctx)
}
