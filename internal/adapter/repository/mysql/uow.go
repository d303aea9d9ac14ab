package mysql

import (
	"context"

	"library-backend/internal/domain/borrow"
	"library-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Borrows: &BorrowRepository{db: tx},
		Books:   &BookRepository{db: tx},
		Users:   &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinBorrowTx(ctx context.Context, borrowID string, fn func(r uow.Repos, b *borrow.Borrow) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		b, err := r.Borrows.GetByBorrowID(ctx, borrowID)
		if err != nil {
			return err
		}
		return fn(r, b)
	})
}
