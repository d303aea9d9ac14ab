// Package borrow implements the borrow lifecycle engine: the state machine
// taking a request from creation through approval, rejection, or return,
// while keeping the available-copies counter consistent with the set of
// pending/approved borrows.
//
// A copy is reserved (counter decremented) when the request is created, not
// when it is approved, so a second borrower cannot grab the last copy while
// an earlier request awaits an admin decision. The reservation is released
// on reject and on return only; approve changes no inventory.
package borrow

import (
	"context"
	"errors"
	"time"

	bookDomain "library-backend/internal/domain/book"
	borrowDomain "library-backend/internal/domain/borrow"
	"library-backend/internal/domain/uow"
	"library-backend/pkg/id"
	"library-backend/pkg/pagination"

	"gorm.io/gorm"
)

var (
	ErrInvalidDays         = errors.New("requested days must be at least 1")
	ErrInvalidStatusFilter = errors.New("unknown status filter")
)

type Usecase struct {
	repo borrowDomain.Repository
	uow  uow.UnitOfWork
}

// NewUsecase: the plain repo serves reads, the UoW serves every mutation.
func NewUsecase(repo borrowDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

// RequestBorrow creates a pending borrow and reserves one copy. The conflict
// check, availability check, counter decrement and record insert run inside
// one transaction; the conditional counter UPDATE and the unique index on
// (borrower, book, active) close the races the precheck cannot.
func (u *Usecase) RequestBorrow(ctx context.Context, in RequestBorrowInput) (*BorrowDTO, error) {
	if in.RequestedDays < 1 {
		return nil, ErrInvalidDays
	}

	var dto *BorrowDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByUserID(ctx, in.BorrowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrowDomain.ErrNotFound
			}
			return err
		}
		if _, err := r.Books.GetByBookID(ctx, in.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrowDomain.ErrNotFound
			}
			return err
		}

		// friendly conflict precheck; the unique index is the backstop
		_, err := r.Borrows.GetActiveByPair(ctx, in.BorrowerID, in.BookID)
		switch {
		case err == nil:
			return borrowDomain.ErrConflict
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if _, err := r.Books.AdjustAvailableCopies(ctx, in.BookID, -1); err != nil {
			if errors.Is(err, bookDomain.ErrInvalidState) {
				return borrowDomain.ErrOutOfStock
			}
			return err
		}

		now := time.Now().UTC()
		b := &borrowDomain.Borrow{
			BorrowID:        id.NewID32(),
			BorrowerID:      in.BorrowerID,
			BookID:          in.BookID,
			Active:          borrowDomain.ActiveFlag(),
			Status:          borrowDomain.StatusPending,
			RequestedDays:   in.RequestedDays,
			BorrowedAt:      now,
			DueAt:           now.AddDate(0, 0, in.RequestedDays),
			StatusUpdatedAt: now,
		}
		if err := r.Borrows.Create(ctx, b); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return borrowDomain.ErrConflict
			}
			return err
		}
		dto = toDTO(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Approve moves a pending borrow to approved. Inventory is untouched: the
// copy was reserved when the request was created.
func (u *Usecase) Approve(ctx context.Context, borrowID string) (*BorrowDTO, error) {
	return u.transit(ctx, borrowID, borrowDomain.ActionApprove, 0)
}

// Reject moves a pending borrow to rejected and releases the reservation.
func (u *Usecase) Reject(ctx context.Context, borrowID string) (*BorrowDTO, error) {
	return u.transit(ctx, borrowID, borrowDomain.ActionReject, +1)
}

// Return moves an approved borrow to returned and releases the reservation.
// A borrow owned by someone else reads as NotFound so callers cannot probe
// for other users' borrows.
func (u *Usecase) Return(ctx context.Context, borrowID, requesterID string) (*BorrowDTO, error) {
	var dto *BorrowDTO
	err := u.uow.WithinBorrowTx(ctx, borrowID, func(r uow.Repos, b *borrowDomain.Borrow) error {
		if b.BorrowerID != requesterID {
			return borrowDomain.ErrNotFound
		}
		return u.applyTransition(ctx, r, b, borrowDomain.ActionReturn, +1, &dto)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrowDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) transit(ctx context.Context, borrowID string, action borrowDomain.Action, delta int) (*BorrowDTO, error) {
	var dto *BorrowDTO
	err := u.uow.WithinBorrowTx(ctx, borrowID, func(r uow.Repos, b *borrowDomain.Borrow) error {
		return u.applyTransition(ctx, r, b, action, delta, &dto)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrowDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// applyTransition resolves the action against the transition table, CASes the
// status row, and applies the inventory delta in the same transaction. A lost
// CAS means a concurrent writer moved the row first; that writer's transition
// wins and this one fails as illegal.
func (u *Usecase) applyTransition(ctx context.Context, r uow.Repos, b *borrowDomain.Borrow, action borrowDomain.Action, delta int, out **BorrowDTO) error {
	next, err := borrowDomain.Transit(b.Status, action)
	if err != nil {
		return err
	}
	ok, err := r.Borrows.UpdateStatus(ctx, b.ID, b.Status, next)
	if err != nil {
		return err
	}
	if !ok {
		return borrowDomain.ErrInvalidTransition
	}
	if delta != 0 {
		if _, err := r.Books.AdjustAvailableCopies(ctx, b.BookID, delta); err != nil {
			return err
		}
	}
	b.Status = next
	b.StatusUpdatedAt = time.Now().UTC()
	*out = toDTO(b)
	return nil
}

func (u *Usecase) Get(ctx context.Context, borrowID string) (*BorrowDTO, error) {
	b, err := u.repo.GetByBorrowID(ctx, borrowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrowDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*pagination.Page[BorrowDTO], error) {
	f := borrowDomain.ListFilter{
		BorrowerID:    in.BorrowerID,
		BookID:        in.BookID,
		SortBy:        in.SortBy,
		SortDirection: borrowDomain.SortAsc,
	}
	if in.Status != "" {
		st := borrowDomain.Status(in.Status)
		if !borrowDomain.ValidStatus(st) {
			return nil, ErrInvalidStatusFilter
		}
		f.Status = &st
	}
	if in.SortDirection == borrowDomain.SortDesc {
		f.SortDirection = borrowDomain.SortDesc
	}
	f.Page, f.PageSize = pagination.Clamp(in.Page, in.PageSize)

	rows, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	data := make([]BorrowDTO, 0, len(rows))
	for i := range rows {
		data = append(data, *toDTO(&rows[i]))
	}
	page := pagination.NewPage(data, total, f.Page, f.PageSize)
	return &page, nil
}
