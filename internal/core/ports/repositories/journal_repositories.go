package repositories

import (
	"context"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of one entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination. It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an entry header and all of its lines as one
	// database transaction. When the entry references a period, the period
	// row is re-checked inside the transaction and ErrPeriodClosed is
	// returned if it has been closed; nothing is persisted on any failure.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// ApproveEntry transitions an entry from draft to approved and sets
	// posted = true. The entry row is locked for the duration of the
	// transaction so concurrent approvals serialize; the loser observes
	// ErrAlreadyApproved. A closed owning period surfaces ErrPeriodClosed.
	ApproveEntry(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time) error
}

// EntryRepositoryFacade combines all journal-entry repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
