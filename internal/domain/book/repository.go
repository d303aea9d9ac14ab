package book

import "context"

type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByBookID(ctx context.Context, bookID string) (*Book, error)
	// AdjustAvailableCopies applies a signed delta to the counter in a
	// single conditional UPDATE and returns the new value. The update is
	// refused with ErrInvalidState when the result would be negative;
	// the counter itself never decides when a delta is warranted.
	AdjustAvailableCopies(ctx context.Context, bookID string, delta int) (int, error)
	Save(ctx context.Context, b *Book) error
	Delete(ctx context.Context, bookID string) error
	List(ctx context.Context, page, pageSize int, sortBy, sortDirection string) ([]Book, int64, error)
}
