package mysql

import (
	"context"
	"errors"
	"testing"

	borrowDomain "library-backend/internal/domain/borrow"
	"library-backend/internal/domain/uow"
	"library-backend/pkg/id"

	"gorm.io/gorm"
)

func TestGormUoW_CommitsAsAUnit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	bookID := seedBook(t, db, 1)
	borrowerID := id.NewID32()

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Books.AdjustAvailableCopies(ctx, bookID, -1); err != nil {
			return err
		}
		return r.Borrows.Create(ctx, makeBorrow(borrowerID, bookID, borrowDomain.StatusPending))
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	book, err := NewBookRepository(db).GetByBookID(ctx, bookID)
	if err != nil {
		t.Fatalf("GetByBookID: %v", err)
	}
	if book.AvailableCopies != 0 {
		t.Fatalf("copies = %d, want 0", book.AvailableCopies)
	}
}

func TestGormUoW_RollsBackCounterOnCreateFailure(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	bookID := seedBook(t, db, 1)
	borrowerID := id.NewID32()

	// an active borrow already exists for the pair
	if err := NewBorrowRepository(db).Create(ctx, makeBorrow(borrowerID, bookID, borrowDomain.StatusPending)); err != nil {
		t.Fatalf("seed borrow: %v", err)
	}

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Books.AdjustAvailableCopies(ctx, bookID, -1); err != nil {
			return err
		}
		// duplicate active pair → unique index rejects the insert
		return r.Borrows.Create(ctx, makeBorrow(borrowerID, bookID, borrowDomain.StatusPending))
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want ErrDuplicatedKey", err)
	}

	// the decrement must have been rolled back with the failed insert
	book, err := NewBookRepository(db).GetByBookID(ctx, bookID)
	if err != nil {
		t.Fatalf("GetByBookID: %v", err)
	}
	if book.AvailableCopies != 1 {
		t.Fatalf("copies = %d, want 1 after rollback", book.AvailableCopies)
	}
}

func TestGormUoW_WithinBorrowTx_LoadsRow(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	b := makeBorrow(id.NewID32(), id.NewID32(), borrowDomain.StatusPending)
	if err := NewBorrowRepository(db).Create(ctx, b); err != nil {
		t.Fatalf("seed borrow: %v", err)
	}

	err := u.WithinBorrowTx(ctx, b.BorrowID, func(r uow.Repos, got *borrowDomain.Borrow) error {
		if got.BorrowID != b.BorrowID || got.Status != borrowDomain.StatusPending {
			t.Fatalf("unexpected borrow: %+v", got)
		}
		ok, err := r.Borrows.UpdateStatus(ctx, got.ID, borrowDomain.StatusPending, borrowDomain.StatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			t.Fatal("CAS must win on a fresh pending row")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinBorrowTx: %v", err)
	}
}

func TestGormUoW_WithinBorrowTx_MissingBorrow(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)

	err := u.WithinBorrowTx(context.Background(), id.NewID32(), func(r uow.Repos, b *borrowDomain.Borrow) error {
		t.Fatal("fn must not run for a missing borrow")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}
