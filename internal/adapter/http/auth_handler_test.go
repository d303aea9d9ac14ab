package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domain "library-backend/internal/domain/user"
	"library-backend/internal/testutil/usermock"
	uc "library-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret"

func newAuthHandler(users *usermock.Repo) *AuthHandler {
	return NewAuthHandler(uc.NewUsecase(users, []byte(testJWTSecret), time.Hour))
}

func authCtx(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignup_Created(t *testing.T) {
	e := newEchoWithValidator()
	users := &usermock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, u *domain.User) error { u.ID = 1; return nil },
	}
	h := newAuthHandler(users)

	c, rec := authCtx(e, "/auth/signup", `{"username":"alice","email":"alice@example.com","password":"correcthorse"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var got uc.UserDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Role != string(domain.RoleMember) {
		t.Fatalf("role = %s, want member", got.Role)
	}
	if !reHex32.MatchString(got.UserID) {
		t.Fatalf("user_id %q not a 32-hex id", got.UserID)
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(&usermock.Repo{})

	c, rec := authCtx(e, "/auth/signup", `{"username":"alice","email":"alice@example.com","password":"short"}`)
	_ = h.Signup(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Password", "at least") {
		t.Fatalf("expected Password detail, got %+v", er.Details)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	e := newEchoWithValidator()
	users := &usermock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, u *domain.User) error { return gorm.ErrDuplicatedKey },
	}
	h := newAuthHandler(users)

	c, rec := authCtx(e, "/auth/signup", `{"username":"alice","email":"alice@example.com","password":"correcthorse"}`)
	_ = h.Signup(c)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogin_OK(t *testing.T) {
	e := newEchoWithValidator()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{
				UserID:       strings.Repeat("1", 32),
				Email:        email,
				PasswordHash: string(hash),
				Role:         domain.RoleMember,
			}, nil
		},
	}
	h := newAuthHandler(users)

	c, rec := authCtx(e, "/auth/login", `{"email":"alice@example.com","password":"correcthorse"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var got uc.TokenDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.AccessToken == "" || got.TokenType != "Bearer" || got.ExpiresIn != 3600 {
		t.Fatalf("unexpected token dto: %+v", got)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEchoWithValidator()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{Email: email, PasswordHash: string(hash)}, nil
		},
	}
	h := newAuthHandler(users)

	c, rec := authCtx(e, "/auth/login", `{"email":"alice@example.com","password":"tr0ub4dor"}`)
	_ = h.Login(c)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_UnknownEmailReadsAsInvalidCredentials(t *testing.T) {
	e := newEchoWithValidator()
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newAuthHandler(users)

	c, rec := authCtx(e, "/auth/login", `{"email":"ghost@example.com","password":"whatever1"}`)
	_ = h.Login(c)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
