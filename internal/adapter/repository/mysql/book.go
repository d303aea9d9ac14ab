package mysql

import (
	"context"

	bookDomain "library-backend/internal/domain/book"

	"gorm.io/gorm"
)

type BookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) *BookRepository { return &BookRepository{db: db} }

func (r *BookRepository) Create(ctx context.Context, b *bookDomain.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookRepository) GetByBookID(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	var out bookDomain.Book
	res := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&out)
	return &out, res.Error
}

// AdjustAvailableCopies applies the delta in one conditional UPDATE. The
// non-negative guard lives in the WHERE clause, so two concurrent decrements
// of the last copy cannot both pass: the loser affects zero rows.
func (r *BookRepository) AdjustAvailableCopies(ctx context.Context, bookID string, delta int) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&bookDomain.Book{}).
		Where("book_id = ? AND available_copies + ? >= 0", bookID, delta).
		UpdateColumn("available_copies", gorm.Expr("available_copies + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the book is gone or the counter would go negative.
		var out bookDomain.Book
		if err := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&out).Error; err != nil {
			return 0, err
		}
		return out.AvailableCopies, bookDomain.ErrInvalidState
	}
	var out bookDomain.Book
	if err := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&out).Error; err != nil {
		return 0, err
	}
	return out.AvailableCopies, nil
}

func (r *BookRepository) Save(ctx context.Context, b *bookDomain.Book) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookRepository) Delete(ctx context.Context, bookID string) error {
	res := r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&bookDomain.Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var bookSortColumns = map[string]string{
	"id":             "id",
	"title":          "title",
	"author":         "author",
	"published_date": "published_date",
	"created_at":     "created_at",
}

func (r *BookRepository) List(ctx context.Context, page, pageSize int, sortBy, sortDirection string) ([]bookDomain.Book, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookDomain.Book{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := bookSortColumns[sortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if sortDirection == "DESC" {
		dir = "DESC"
	}
	order := col + " " + dir
	if col != "id" {
		order += ", id ASC"
	}

	var out []bookDomain.Book
	err := q.Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	return out, total, err
}
