package borrow

import (
	"time"

	borrowDomain "library-backend/internal/domain/borrow"
)

type RequestBorrowInput struct {
	BorrowerID    string `json:"borrower_id"`
	BookID        string `json:"book_id"`
	RequestedDays int    `json:"requested_days"`
}

type ListInput struct {
	Status     string
	BorrowerID string
	BookID     string

	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

type BorrowDTO struct {
	BorrowID      string    `json:"borrow_id"`
	BorrowerID    string    `json:"borrower_id"`
	BookID        string    `json:"book_id"`
	Status        string    `json:"status"`
	RequestedDays int       `json:"requested_days"`
	BorrowedAt    time.Time `json:"borrowed_at"`
	DueAt         time.Time `json:"due_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDTO(b *borrowDomain.Borrow) *BorrowDTO {
	return &BorrowDTO{
		BorrowID:      b.BorrowID,
		BorrowerID:    b.BorrowerID,
		BookID:        b.BookID,
		Status:        string(b.Status),
		RequestedDays: b.RequestedDays,
		BorrowedAt:    b.BorrowedAt,
		DueAt:         b.DueAt,
		CreatedAt:     b.CreatedAt,
	}
}
