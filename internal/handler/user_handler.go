package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masstest/masstest-backend/internal/authz"
	"github.com/masstest/masstest-backend/internal/middleware"
	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/response"
	"github.com/masstest/masstest-backend/internal/service"
	"github.com/masstest/masstest-backend/internal/validator"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers godoc
// GET /users
// Requires the user:list:read permission.
func (h *UserHandler) ListUsers(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	if !authz.Allow(claims, string(model.PermissionUserListRead), "", claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser godoc
// GET /users/:id
// The full record needs user:data:read (or ownership); failing that, the
// owner-or-permitted fallback user:fullName:read still grants the read.
func (h *UserHandler) GetUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	id := c.Param("id")
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	if !authz.Allow(claims, string(model.PermissionUserDataRead), id, claims.UserID) {
		if claims.UserID != id && !authz.Allow(claims, string(model.PermissionUserFullNameRead), id, claims.UserID) {
			response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateUser godoc
// PUT /users/:id
// Updates the full name. Requires user:fullName:write or ownership.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	id := c.Param("id")
	if _, err := h.userService.Get(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	if !authz.Allow(claims, string(model.PermissionUserFullNameWrite), id, claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.UpdateFullName(c.Request.Context(), id, req.FullName)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
