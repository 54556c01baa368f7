package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masstest/masstest-backend/internal/response"
	"github.com/masstest/masstest-backend/internal/service"
)

// failFromError maps a service error onto the HTTP error taxonomy:
// NotFound→404, Forbidden→403, InvalidState/InvalidArgument→400,
// anything else→500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrNotAttemptOwner)
	case errors.Is(err, service.ErrTestNotActive):
		response.Fail(c, http.StatusBadRequest, response.ErrTestNotActive)
	case errors.Is(err, service.ErrAttemptFinished):
		response.Fail(c, http.StatusBadRequest, response.ErrAttemptFinished)
	case errors.Is(err, service.ErrInvalidState):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidState)
	case errors.Is(err, service.ErrInvalidArgument):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidIndex)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
