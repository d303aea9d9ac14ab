package book

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("book not found")
	// ErrInvalidState means an inventory adjustment would drive the
	// available-copies counter negative. The lifecycle engine should make
	// this unreachable; seeing it in production indicates a bug.
	ErrInvalidState = errors.New("available copies cannot go negative")
)

type Book struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	BookID          string    `gorm:"size:32;uniqueIndex:ux_books_book_id" json:"book_id"`
	Title           string    `gorm:"size:255" json:"title"`
	Author          string    `gorm:"size:255" json:"author"`
	ISBN            string    `gorm:"size:32;column:isbn" json:"isbn"`
	Summary         string    `gorm:"type:text" json:"summary"`
	PhotoURL        string    `gorm:"type:text;column:photo_url" json:"photo_url"`
	PublishedDate   time.Time `gorm:"column:published_date" json:"published_date"`
	AvailableCopies int       `gorm:"column:available_copies;default:1" json:"available_copies"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string { return "books" }
