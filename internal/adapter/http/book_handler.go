package http

import (
	"net/http"
	"time"

	"library-backend/internal/usecase/book"
	"library-backend/pkg/pagination"

	"github.com/labstack/echo/v4"
)

type BookHandler struct{ uc *book.Usecase }

func NewBookHandler(uc *book.Usecase) *BookHandler { return &BookHandler{uc: uc} }

type createBookReq struct {
	Title           string `json:"title"            validate:"required"`
	Author          string `json:"author"           validate:"required"`
	ISBN            string `json:"isbn"             validate:"omitempty,min=10,max=17"`
	Summary         string `json:"summary"`
	PhotoURL        string `json:"photo_url"        validate:"omitempty,url"`
	PublishedDate   string `json:"published_date"   validate:"omitempty,datetime=2006-01-02"`
	AvailableCopies int    `json:"available_copies" validate:"omitempty,gte=1"`
}

type updateBookReq struct {
	Title    *string `json:"title"     validate:"omitempty,min=1"`
	Author   *string `json:"author"    validate:"omitempty,min=1"`
	ISBN     *string `json:"isbn"      validate:"omitempty,min=10,max=17"`
	Summary  *string `json:"summary"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url"`
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	var req createBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := book.CreateBookInput{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Summary:         req.Summary,
		PhotoURL:        req.PhotoURL,
		AvailableCopies: req.AvailableCopies,
	}
	if req.PublishedDate != "" {
		d, _ := time.Parse("2006-01-02", req.PublishedDate)
		in.PublishedDate = d
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	bookID := c.Param("book_id")
	if !reHex32.MatchString(bookID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), bookID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BookHandler) ListBooks(c echo.Context) error {
	page, err := h.uc.List(
		c.Request().Context(),
		pagination.AtoiDefault(c.QueryParam("page"), 0),
		pagination.AtoiDefault(c.QueryParam("page_size"), 0),
		c.QueryParam("sort_by"),
		c.QueryParam("sort_direction"),
	)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	bookID := c.Param("book_id")
	if !reHex32.MatchString(bookID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book_id path param"})
	}
	var req updateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), bookID, book.UpdateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Summary:  req.Summary,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BookHandler) DeleteBook(c echo.Context) error {
	bookID := c.Param("book_id")
	if !reHex32.MatchString(bookID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book_id path param"})
	}
	if err := h.uc.Delete(c.Request().Context(), bookID); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
