// Package book manages the catalog. The one rule it owns beyond CRUD: a book
// cannot be deleted while any borrow still reserves a copy of it.
package book

import (
	"context"
	"errors"

	bookDomain "library-backend/internal/domain/book"
	borrowDomain "library-backend/internal/domain/borrow"
	"library-backend/internal/domain/uow"
	"library-backend/pkg/id"
	"library-backend/pkg/pagination"

	"gorm.io/gorm"
)

// ErrHasActiveBorrows blocks deletion while pending/approved borrows exist.
var ErrHasActiveBorrows = errors.New("cannot delete book with pending or approved borrow requests")

type Usecase struct {
	repo bookDomain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo bookDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateBookInput) (*BookDTO, error) {
	if in.Title == "" {
		return nil, errors.New("title is required")
	}
	copies := in.AvailableCopies
	if copies < 1 {
		copies = 1
	}
	b := &bookDomain.Book{
		BookID:          id.NewID32(),
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		Summary:         in.Summary,
		PhotoURL:        in.PhotoURL,
		PublishedDate:   in.PublishedDate,
		AvailableCopies: copies,
	}
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) Get(ctx context.Context, bookID string) (*BookDTO, error) {
	b, err := u.repo.GetByBookID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) List(ctx context.Context, page, pageSize int, sortBy, sortDirection string) (*pagination.Page[BookDTO], error) {
	page, pageSize = pagination.Clamp(page, pageSize)
	dir := borrowDomain.SortAsc
	if sortDirection == borrowDomain.SortDesc {
		dir = borrowDomain.SortDesc
	}
	rows, total, err := u.repo.List(ctx, page, pageSize, sortBy, dir)
	if err != nil {
		return nil, err
	}
	data := make([]BookDTO, 0, len(rows))
	for i := range rows {
		data = append(data, *toDTO(&rows[i]))
	}
	p := pagination.NewPage(data, total, page, pageSize)
	return &p, nil
}

func (u *Usecase) Update(ctx context.Context, bookID string, in UpdateBookInput) (*BookDTO, error) {
	b, err := u.repo.GetByBookID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookDomain.ErrNotFound
		}
		return nil, err
	}
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.ISBN != nil {
		b.ISBN = *in.ISBN
	}
	if in.Summary != nil {
		b.Summary = *in.Summary
	}
	if in.PhotoURL != nil {
		b.PhotoURL = *in.PhotoURL
	}
	if err := u.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

// Delete removes a book unless a borrow still reserves one of its copies.
// The check and the delete share one transaction so a borrow requested in
// between cannot end up pointing at a vanished book.
func (u *Usecase) Delete(ctx context.Context, bookID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Books.GetByBookID(ctx, bookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bookDomain.ErrNotFound
			}
			return err
		}
		active, err := r.Borrows.HasActiveForBook(ctx, bookID)
		if err != nil {
			return err
		}
		if active {
			return ErrHasActiveBorrows
		}
		if err := r.Books.Delete(ctx, bookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bookDomain.ErrNotFound
			}
			return err
		}
		return nil
	})
}

func toDTO(b *bookDomain.Book) *BookDTO {
	return &BookDTO{
		BookID:          b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Summary:         b.Summary,
		PhotoURL:        b.PhotoURL,
		PublishedDate:   b.PublishedDate,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
	}
}
