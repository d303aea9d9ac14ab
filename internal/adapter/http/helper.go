package http

import (
	"errors"
	"net/http"

	bookDomain "library-backend/internal/domain/book"
	borrowDomain "library-backend/internal/domain/borrow"
	userDomain "library-backend/internal/domain/user"
	authUC "library-backend/internal/usecase/auth"
	bookUC "library-backend/internal/usecase/book"
	borrowUC "library-backend/internal/usecase/borrow"

	"github.com/labstack/echo/v4"
)

// domainError translates usecase/domain sentinels to an HTTP response.
// Anything unrecognized is a 500 with a generic message; the real error
// goes to the server log via echo's HTTPErrorHandler, not to the client.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, borrowDomain.ErrNotFound),
		errors.Is(err, bookDomain.ErrNotFound),
		errors.Is(err, userDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, borrowDomain.ErrConflict),
		errors.Is(err, borrowDomain.ErrOutOfStock),
		errors.Is(err, borrowDomain.ErrInvalidTransition),
		errors.Is(err, userDomain.ErrDuplicate),
		errors.Is(err, bookUC.ErrHasActiveBorrows):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, borrowUC.ErrInvalidDays),
		errors.Is(err, borrowUC.ErrInvalidStatusFilter):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, authUC.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}
