package dto

import (
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// CreatePeriodRequest defines the data needed to create a new accounting period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID  string     `json:"periodID"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	IsClosed  bool       `json:"isClosed"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	ClosedBy  string     `json:"closedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	CreatedBy string     `json:"createdBy"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		IsClosed:  p.IsClosed,
		ClosedAt:  p.ClosedAt,
		ClosedBy:  p.ClosedBy,
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
}

// ToPeriodResponses converts a slice of domain.AccountingPeriod to []PeriodResponse.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = ToPeriodResponse(&p)
	}
	return responses
}
