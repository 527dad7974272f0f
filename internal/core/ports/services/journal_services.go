package services

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
)

// EntryReaderSvc defines read operations for journal entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for journal entry data
type EntryWriterSvc interface {
	// CreateEntry validates and persists a new balanced journal entry with
	// its lines as one atomic unit.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ApproveEntry transitions a draft entry to approved and marks it posted.
	ApproveEntry(ctx context.Context, entryID string, actorUserID string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all journal-entry service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
