package borrowmock

import (
	"context"
	"errors"

	domain "library-backend/internal/domain/borrow"
)

var errUnimplemented = errors.New("borrowmock: method not implemented")

// Repo is a function-backed mock satisfying domain.Repository. Fill in only
// the fields a test needs.
type Repo struct {
	CreateFn           func(ctx context.Context, b *domain.Borrow) error
	GetByBorrowIDFn    func(ctx context.Context, borrowID string) (*domain.Borrow, error)
	GetActiveByPairFn  func(ctx context.Context, borrowerID, bookID string) (*domain.Borrow, error)
	UpdateStatusFn     func(ctx context.Context, id uint64, from, to domain.Status) (bool, error)
	HasActiveForBookFn func(ctx context.Context, bookID string) (bool, error)
	ListFn             func(ctx context.Context, f domain.ListFilter) ([]domain.Borrow, int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, b *domain.Borrow) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBorrowID(ctx context.Context, borrowID string) (*domain.Borrow, error) {
	if m.GetByBorrowIDFn != nil {
		return m.GetByBorrowIDFn(ctx, borrowID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetActiveByPair(ctx context.Context, borrowerID, bookID string) (*domain.Borrow, error) {
	if m.GetActiveByPairFn != nil {
		return m.GetActiveByPairFn(ctx, borrowerID, bookID)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, from, to domain.Status) (bool, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, from, to)
	}
	return false, errUnimplemented
}

func (m *Repo) HasActiveForBook(ctx context.Context, bookID string) (bool, error) {
	if m.HasActiveForBookFn != nil {
		return m.HasActiveForBookFn(ctx, bookID)
	}
	return false, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Borrow, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errUnimplemented
}
