package mysql

import (
	"context"
	"time"

	borrowDomain "library-backend/internal/domain/borrow"

	"gorm.io/gorm"
)

type BorrowRepository struct{ db *gorm.DB }

func NewBorrowRepository(db *gorm.DB) *BorrowRepository { return &BorrowRepository{db: db} }

func (r *BorrowRepository) Create(ctx context.Context, b *borrowDomain.Borrow) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowRepository) GetByBorrowID(ctx context.Context, borrowID string) (*borrowDomain.Borrow, error) {
	var out borrowDomain.Borrow
	res := r.db.WithContext(ctx).Where("borrow_id = ?", borrowID).First(&out)
	return &out, res.Error
}

func (r *BorrowRepository) GetActiveByPair(ctx context.Context, borrowerID, bookID string) (*borrowDomain.Borrow, error) {
	var out borrowDomain.Borrow
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND book_id = ? AND status IN ?",
			borrowerID, bookID, []borrowDomain.Status{borrowDomain.StatusPending, borrowDomain.StatusApproved}).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

// UpdateStatus compare-and-swaps the status column. The WHERE guard on the
// old status makes concurrent transitions race-safe without row locks: only
// one writer can move the row, the loser sees zero affected rows. Terminal
// statuses also clear the active flag so the (borrower, book, active) unique
// index frees the pair for a new request.
func (r *BorrowRepository) UpdateStatus(ctx context.Context, id uint64, from, to borrowDomain.Status) (bool, error) {
	updates := map[string]any{
		"status":            to,
		"status_updated_at": time.Now().UTC(),
	}
	if to.Terminal() {
		updates["active"] = gorm.Expr("NULL")
	}
	res := r.db.WithContext(ctx).
		Model(&borrowDomain.Borrow{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BorrowRepository) HasActiveForBook(ctx context.Context, bookID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&borrowDomain.Borrow{}).
		Where("book_id = ? AND status IN ?",
			bookID, []borrowDomain.Status{borrowDomain.StatusPending, borrowDomain.StatusApproved}).
		Count(&n).Error
	return n > 0, err
}

// sortColumns whitelists ORDER BY targets; anything else falls back to id.
var sortColumns = map[string]string{
	"id":          "id",
	"status":      "status",
	"borrowed_at": "borrowed_at",
	"due_at":      "due_at",
	"created_at":  "created_at",
}

func (r *BorrowRepository) List(ctx context.Context, f borrowDomain.ListFilter) ([]borrowDomain.Borrow, int64, error) {
	q := r.db.WithContext(ctx).Model(&borrowDomain.Borrow{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.BorrowerID != "" {
		q = q.Where("borrower_id = ?", f.BorrowerID)
	}
	if f.BookID != "" {
		q = q.Where("book_id = ?", f.BookID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if f.SortDirection == borrowDomain.SortDesc {
		dir = "DESC"
	}
	order := col + " " + dir
	if col != "id" {
		// stable ordering: id breaks ties
		order += ", id ASC"
	}

	var out []borrowDomain.Borrow
	err := q.Order(order).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&out).Error
	return out, total, err
}
