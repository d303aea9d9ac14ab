package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library-backend/pkg/id"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type borrowSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	BorrowID        string    `gorm:"size:32;uniqueIndex:ux_borrows_borrow_id;column:borrow_id"`
	BorrowerID      string    `gorm:"size:32;uniqueIndex:ux_borrows_pair_active,priority:1;column:borrower_id"`
	BookID          string    `gorm:"size:32;uniqueIndex:ux_borrows_pair_active,priority:2;column:book_id"`
	Active          *uint8    `gorm:"uniqueIndex:ux_borrows_pair_active,priority:3;column:active"`
	Status          string    `gorm:"type:text;column:status"` // no enum
	RequestedDays   int       `gorm:"column:requested_days"`
	BorrowedAt      time.Time `gorm:"column:borrowed_at"`
	DueAt           time.Time `gorm:"column:due_at"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (borrowSQLite) TableName() string { return "borrows" }

type bookSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	BookID          string    `gorm:"size:32;uniqueIndex:ux_books_book_id;column:book_id"`
	Title           string    `gorm:"column:title"`
	Author          string    `gorm:"column:author"`
	ISBN            string    `gorm:"column:isbn"`
	Summary         string    `gorm:"column:summary"`
	PhotoURL        string    `gorm:"column:photo_url"`
	PublishedDate   time.Time `gorm:"column:published_date"`
	AvailableCopies int       `gorm:"column:available_copies"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookSQLite) TableName() string { return "books" }

type userSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	UserID       string    `gorm:"size:32;uniqueIndex:ux_users_user_id;column:user_id"`
	Username     string    `gorm:"uniqueIndex:ux_users_username;column:username"`
	Email        string    `gorm:"uniqueIndex:ux_users_email;column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"type:text;column:role"` // no enum
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&borrowSQLite{}, &bookSQLite{}, &userSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedBook(t *testing.T, db *gorm.DB, copies int) string {
	t.Helper()
	bookID := id.NewID32()
	b := &bookSQLite{
		BookID:          bookID,
		Title:           "The Go Programming Language",
		Author:          "Donovan & Kernighan",
		ISBN:            "9780134190440",
		AvailableCopies: copies,
		PublishedDate:   time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return bookID
}
