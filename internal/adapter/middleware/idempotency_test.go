package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"library-backend/pkg/token"
)

// helper: new Echo with JWT + idempotency and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(JWT(jwtSecret), Idempotency(rdb, ttl))
	e.POST("/borrows", handler)
	e.GET("/borrows", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, hdr["Authorization"])
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func bearerForUser(t *testing.T, userID string) string {
	t.Helper()
	raw, err := token.Generate(jwtSecret, userID, "member", time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return "Bearer " + raw
}

func validHeaders(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"Authorization": bearerFor(t, "member"),
		"X-Request-Id":  strings.Repeat("a", 32),
		"X-Request-At":  time.Now().UTC().Format(time.RFC3339),
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/borrows", nil, map[string]string{
		"Authorization": bearerFor(t, "member"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	// missing X-Request-Id
	h := validHeaders(t)
	delete(h, "X-Request-Id")
	rec := doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing X-Request-Id => want 400, got %d", rec.Code)
	}

	// invalid X-Request-Id
	h = validHeaders(t)
	h["X-Request-Id"] = "NOT-VALID"
	rec = doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid X-Request-Id => want 400, got %d", rec.Code)
	}

	// invalid X-Request-At format
	h = validHeaders(t)
	h["X-Request-At"] = "not-a-time"
	rec = doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid X-Request-At => want 400, got %d", rec.Code)
	}

	// X-Request-At too skewed (past)
	h = validHeaders(t)
	h["X-Request-At"] = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	rec = doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("skewed X-Request-At => want 400, got %d", rec.Code)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"ok": true, "n": calls})
	})

	h := validHeaders(t)
	body := map[string]int{"requested_days": 7}

	rec := doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, body), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call => want 201, got %d", rec.Code)
	}

	// identical retry replays the stored response without re-running the handler
	rec = doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, body), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if !strings.Contains(rec.Body.String(), `"n":1`) {
		t.Fatalf("replay body differs: %s", rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	h := validHeaders(t)
	rec := doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"requested_days": 7}), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call => want 201, got %d", rec.Code)
	}

	rec = doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"requested_days": 30}), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("mismatched body => want 409, got %d", rec.Code)
	}
}

func Test_KeysAreScopedPerUser(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	body := map[string]int{"requested_days": 7}
	h := validHeaders(t)
	if rec := doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, body), h); rec.Code != http.StatusCreated {
		t.Fatalf("first user => want 201, got %d", rec.Code)
	}

	// different principal, same request id: not a replay
	h["Authorization"] = bearerForUser(t, strings.Repeat("b", 32))
	if rec := doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, body), h); rec.Code != http.StatusCreated {
		t.Fatalf("second user => want 201, got %d", rec.Code)
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	rec := doReq(t, e, http.MethodPost, "/borrows", mkJSONBody(t, map[string]int{"x": 1}), validHeaders(t))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}
