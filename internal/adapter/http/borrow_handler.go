package http

import (
	"net/http"

	"library-backend/internal/adapter/middleware"
	borrowDomain "library-backend/internal/domain/borrow"
	userDomain "library-backend/internal/domain/user"
	"library-backend/internal/usecase/borrow"
	"library-backend/pkg/pagination"

	"github.com/labstack/echo/v4"
)

type BorrowHandler struct{ uc *borrow.Usecase }

func NewBorrowHandler(uc *borrow.Usecase) *BorrowHandler { return &BorrowHandler{uc: uc} }

type requestBorrowReq struct {
	BookID        string `json:"book_id"        validate:"required,hex32"`
	RequestedDays int    `json:"requested_days" validate:"required,gte=1"`
}

// RequestBorrow creates a pending borrow for the authenticated member. The
// borrower is always the principal; the body never names one.
func (h *BorrowHandler) RequestBorrow(c echo.Context) error {
	claims, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	var req requestBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RequestBorrow(c.Request().Context(), borrow.RequestBorrowInput{
		BorrowerID:    claims.UserID,
		BookID:        req.BookID,
		RequestedDays: req.RequestedDays,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BorrowHandler) ApproveBorrow(c echo.Context) error {
	borrowID := c.Param("borrow_id")
	if !reHex32.MatchString(borrowID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrow_id path param"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), borrowID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BorrowHandler) RejectBorrow(c echo.Context) error {
	borrowID := c.Param("borrow_id")
	if !reHex32.MatchString(borrowID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrow_id path param"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), borrowID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BorrowHandler) ReturnBorrow(c echo.Context) error {
	claims, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	borrowID := c.Param("borrow_id")
	if !reHex32.MatchString(borrowID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrow_id path param"})
	}
	dto, err := h.uc.Return(c.Request().Context(), borrowID, claims.UserID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetBorrow serves a single borrow. Admins see any record; a member sees only
// their own, and someone else's reads as NotFound so existence never leaks.
func (h *BorrowHandler) GetBorrow(c echo.Context) error {
	claims, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	borrowID := c.Param("borrow_id")
	if !reHex32.MatchString(borrowID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrow_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), borrowID)
	if err != nil {
		return domainError(c, err)
	}
	if claims.Role != string(userDomain.RoleAdmin) && dto.BorrowerID != claims.UserID {
		return domainError(c, borrowDomain.ErrNotFound)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListBorrows pages through borrows. For members the borrower filter is
// pinned to the principal regardless of the query string.
func (h *BorrowHandler) ListBorrows(c echo.Context) error {
	claims, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	in := borrow.ListInput{
		Status:        c.QueryParam("status"),
		BorrowerID:    c.QueryParam("borrower_id"),
		BookID:        c.QueryParam("book_id"),
		Page:          pagination.AtoiDefault(c.QueryParam("page"), 0),
		PageSize:      pagination.AtoiDefault(c.QueryParam("page_size"), 0),
		SortBy:        c.QueryParam("sort_by"),
		SortDirection: c.QueryParam("sort_direction"),
	}
	if claims.Role != string(userDomain.RoleAdmin) {
		in.BorrowerID = claims.UserID
	}
	page, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
