// Package auth covers signup, login and the admin bootstrap. Passwords are
// bcrypt-hashed; logins yield HS256 JWTs carrying the user's public id and
// role.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	userDomain "library-backend/internal/domain/user"
	"library-backend/pkg/id"
	"library-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Usecase struct {
	repo      userDomain.Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUsecase(repo userDomain.Repository, jwtSecret []byte, tokenTTL time.Duration) *Usecase {
	return &Usecase{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Signup registers a member. Admins are never created through this path.
func (u *Usecase) Signup(ctx context.Context, in SignupInput) (*UserDTO, error) {
	if in.Username == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, errors.New("username, email and a password of at least 8 characters are required")
	}
	// friendly username precheck; the unique indexes are the backstop
	switch _, err := u.repo.GetByUsername(ctx, in.Username); {
	case err == nil:
		return nil, userDomain.ErrDuplicate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usr := &userDomain.User{
		UserID:       id.NewID32(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         userDomain.RoleMember,
	}
	if err := u.repo.Create(ctx, usr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, userDomain.ErrDuplicate
		}
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	raw, err := token.Generate(u.jwtSecret, usr.UserID, string(usr.Role), u.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenDTO{
		AccessToken: raw,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.tokenTTL.Seconds()),
	}, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// Called once at startup.
func (u *Usecase) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := u.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	usr := &userDomain.User{
		UserID:       id.NewID32(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         userDomain.RoleAdmin,
	}
	if err := u.repo.Create(ctx, usr); err != nil {
		return err
	}
	log.Printf("auth: bootstrap admin %s created", email)
	return nil
}

func toDTO(usr *userDomain.User) *UserDTO {
	return &UserDTO{
		UserID:    usr.UserID,
		Username:  usr.Username,
		Email:     usr.Email,
		Role:      string(usr.Role),
		CreatedAt: usr.CreatedAt,
	}
}
