package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username or email already registered")
)

type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Username     string    `gorm:"size:64;uniqueIndex:ux_users_username" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"size:128;column:password_hash" json:"-"`
	Role         Role      `gorm:"type:enum('admin','member');default:'member'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
