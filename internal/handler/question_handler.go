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

// QuestionHandler handles question authoring endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestion godoc
// POST /questions
// Requires the quest:create permission. The requester becomes the author.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	if !authz.Allow(claims, string(model.PermissionQuestionCreate), "", claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// GetQuestion godoc
// GET /questions/:id
// Readable by the author (owner rule) or anyone holding quest:read.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	if !authz.Allow(claims, string(model.PermissionQuestionRead), question.AuthorID, claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}
