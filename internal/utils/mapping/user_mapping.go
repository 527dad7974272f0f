package mapping

import (
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		Role:         string(d.Role),
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		DeletedAt:    d.DeletedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		Role:         domain.UserRole(m.Role),
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		DeletedAt:    m.DeletedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
