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

// CourseHandler handles course endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses godoc
// GET /courses
// Public: anyone can list courses.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// CreateCourse godoc
// POST /courses
// Requires the course:add permission.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	if !authz.Allow(claims, string(model.PermissionCourseAdd), "", claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}
