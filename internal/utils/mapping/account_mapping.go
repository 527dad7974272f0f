package mapping

import (
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
