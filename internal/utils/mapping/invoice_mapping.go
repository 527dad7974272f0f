package mapping

import (
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:        d.InvoiceID,
		InvoiceNumber:    d.InvoiceNumber,
		InvoiceType:      models.InvoiceType(d.InvoiceType),
		CounterpartyName: d.CounterpartyName,
		InvoiceDate:      d.InvoiceDate,
		TotalAmount:      d.TotalAmount,
		IsApproved:       d.IsApproved,
		PeriodID:         d.PeriodID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:        m.InvoiceID,
		InvoiceNumber:    m.InvoiceNumber,
		InvoiceType:      domain.InvoiceType(m.InvoiceType),
		CounterpartyName: m.CounterpartyName,
		InvoiceDate:      m.InvoiceDate,
		TotalAmount:      m.TotalAmount,
		IsApproved:       m.IsApproved,
		PeriodID:         m.PeriodID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:      d.ItemID,
		InvoiceID:   d.InvoiceID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TotalPrice:  d.TotalPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
