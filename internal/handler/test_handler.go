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

// TestHandler handles test assembly endpoints.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// ListTests godoc
// GET /tests
// Public listing consumed by the web client.
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.testService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// CreateTest godoc
// POST /tests
// Requires the test:create permission.
func (h *TestHandler) CreateTest(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	if !authz.Allow(claims, string(model.PermissionTestCreate), "", claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test, err := h.testService.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"test": test})
}

// GetTest godoc
// GET /tests/:id
// Existence is checked before authentication so an unknown id answers 404
// even without a token.
func (h *TestHandler) GetTest(c *gin.Context) {
	test, err := h.testService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	if !authz.Allow(claims, string(model.PermissionCourseTestRead), test.CourseID, claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": test})
}
