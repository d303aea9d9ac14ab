package uow

import (
	"context"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/borrow"
	"library-backend/internal/domain/user"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Borrows borrow.Repository
	Books   book.Repository
	Users   user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: load the borrow first, then pass it in
	WithinBorrowTx(ctx context.Context, borrowID string, fn func(r Repos, b *borrow.Borrow) error) error
}
