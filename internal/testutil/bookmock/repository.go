package bookmock

import (
	"context"
	"errors"

	domain "library-backend/internal/domain/book"
)

var errUnimplemented = errors.New("bookmock: method not implemented")

// Repo is a function-backed mock satisfying domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, b *domain.Book) error
	GetByBookIDFn           func(ctx context.Context, bookID string) (*domain.Book, error)
	AdjustAvailableCopiesFn func(ctx context.Context, bookID string, delta int) (int, error)
	SaveFn                  func(ctx context.Context, b *domain.Book) error
	DeleteFn                func(ctx context.Context, bookID string) error
	ListFn                  func(ctx context.Context, page, pageSize int, sortBy, sortDirection string) ([]domain.Book, int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, b *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	if m.GetByBookIDFn != nil {
		return m.GetByBookIDFn(ctx, bookID)
	}
	return nil, errUnimplemented
}

func (m *Repo) AdjustAvailableCopies(ctx context.Context, bookID string, delta int) (int, error) {
	if m.AdjustAvailableCopiesFn != nil {
		return m.AdjustAvailableCopiesFn(ctx, bookID, delta)
	}
	return 0, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, b *domain.Book) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, bookID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, bookID)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, page, pageSize int, sortBy, sortDirection string) ([]domain.Book, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page, pageSize, sortBy, sortDirection)
	}
	return nil, 0, errUnimplemented
}
