package mapping

import (
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
)

// ToModelPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:    d.PeriodID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsClosed:    d.IsClosed,
		ClosedAt:    d.ClosedAt,
		ClosedBy:    d.ClosedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsClosed:    m.IsClosed,
		ClosedAt:    m.ClosedAt,
		ClosedBy:    m.ClosedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
