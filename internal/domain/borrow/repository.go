package borrow

import "context"

// SortDirection values accepted by ListFilter.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

type ListFilter struct {
	Status     *Status
	BorrowerID string
	BookID     string

	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

type Repository interface {
	Create(ctx context.Context, b *Borrow) error
	GetByBorrowID(ctx context.Context, borrowID string) (*Borrow, error)
	// GetActiveByPair returns the single pending/approved borrow for
	// (borrower, book), or gorm.ErrRecordNotFound.
	GetActiveByPair(ctx context.Context, borrowerID, bookID string) (*Borrow, error)
	// UpdateStatus performs a compare-and-swap on the status column and
	// clears the active flag when the new status is terminal. It reports
	// false when the row no longer carries the expected status.
	UpdateStatus(ctx context.Context, id uint64, from, to Status) (bool, error)
	// HasActiveForBook reports whether any pending/approved borrow holds a
	// copy of the book. Used by the catalog's delete guard.
	HasActiveForBook(ctx context.Context, bookID string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]Borrow, int64, error)
}
