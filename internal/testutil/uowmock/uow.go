package uowmock

import (
	"context"
	"errors"

	"library-backend/internal/domain/borrow"
	"library-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock satisfying uow.UnitOfWork. Fill in the fields
// a test needs; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinBorrowTxFn func(ctx context.Context, borrowID string, fn func(r uow.Repos, b *borrow.Borrow) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough wires the mock UoW to a fixed repo set: transactions degrade to
// plain function calls, which is what most unit tests want.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinBorrowTxFn: func(ctx context.Context, borrowID string, fn func(r uow.Repos, b *borrow.Borrow) error) error {
			b, err := r.Borrows.GetByBorrowID(ctx, borrowID)
			if err != nil {
				return err
			}
			return fn(r, b)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinBorrowTx(ctx context.Context, borrowID string, fn func(r uow.Repos, b *borrow.Borrow) error) error {
	if m.WithinBorrowTxFn != nil {
		return m.WithinBorrowTxFn(ctx, borrowID, fn)
	}
	return errUnimplemented
}
