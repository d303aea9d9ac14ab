package borrow

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

var (
	ErrNotFound          = errors.New("borrow not found")
	ErrConflict          = errors.New("borrower already has an active borrow for this book")
	ErrOutOfStock        = errors.New("book out of stock")
	ErrInvalidTransition = errors.New("borrow is not in the correct status for this operation")
)

// Active reports whether the status still holds a copy reservation.
func (s Status) Active() bool { return s == StatusPending || s == StatusApproved }

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool { return s == StatusRejected || s == StatusReturned }

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReturned:
		return true
	}
	return false
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionReturn  Action = "return"
)

// transitions is the complete set of legal state changes. Anything not in
// this table is ErrInvalidTransition.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	StatusApproved: {
		ActionReturn: StatusReturned,
	},
}

// Transit resolves (current, action) against the transition table.
func Transit(current Status, action Action) (Status, error) {
	next, ok := transitions[current][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// activeFlag marks rows holding a reservation. It is 1 for pending/approved
// and NULL once the borrow reaches a terminal state, so the composite unique
// index (borrower_id, book_id, active) admits at most one active borrow per
// pair while ignoring history rows.
var activeFlag uint8 = 1

func ActiveFlag() *uint8 { return &activeFlag }

type Borrow struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	BorrowID        string    `gorm:"size:32;uniqueIndex:ux_borrows_borrow_id" json:"borrow_id"`
	BorrowerID      string    `gorm:"size:32;uniqueIndex:ux_borrows_pair_active,priority:1" json:"borrower_id"`
	BookID          string    `gorm:"size:32;uniqueIndex:ux_borrows_pair_active,priority:2;index:idx_borrows_book" json:"book_id"`
	Active          *uint8    `gorm:"uniqueIndex:ux_borrows_pair_active,priority:3" json:"-"`
	Status          Status    `gorm:"type:enum('pending','approved','rejected','returned');default:'pending'" json:"status"`
	RequestedDays   int       `gorm:"column:requested_days" json:"requested_days"`
	BorrowedAt      time.Time `gorm:"column:borrowed_at" json:"borrowed_at"`
	DueAt           time.Time `gorm:"column:due_at" json:"due_at"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Borrow) TableName() string { return "borrows" }
