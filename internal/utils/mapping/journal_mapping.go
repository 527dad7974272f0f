package mapping

import (
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		EntryType:   models.EntryType(d.EntryType),
		Status:      models.EntryStatus(d.Status),
		Posted:      d.Posted,
		PeriodID:    d.PeriodID,
		InvoiceID:   d.InvoiceID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		EntryType:   domain.EntryType(m.EntryType),
		Status:      domain.EntryStatus(m.Status),
		Posted:      m.Posted,
		PeriodID:    m.PeriodID,
		InvoiceID:   m.InvoiceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineNo:      d.LineNo,
		Debit:       d.Debit,
		Credit:      d.Credit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineNo:      m.LineNo,
		Debit:       m.Debit,
		Credit:      m.Credit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
