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

// AttemptHandler handles the attempt lifecycle endpoints.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// StartAttempt godoc
// POST /tests/:id/attempts
// Any authenticated user can start an attempt on an active test; the
// requester becomes the attempt's exclusive owner.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// SubmitAnswer godoc
// PUT /attempts/:id/answer
// Records one answer on an unfinished attempt owned by the requester.
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.attemptService.SubmitAnswer(c.Request.Context(), c.Param("id"), claims.UserID, *req.QIndex, *req.Choice)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "answer recorded"})
}

// FinishAttempt godoc
// POST /attempts/:id/finish
// One-way transition to finished; responds with the computed score.
func (h *AttemptHandler) FinishAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	attempt, err := h.attemptService.Finish(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"score": attempt.Score})
}

// GetAttempt godoc
// GET /attempts/:id
// Readable by the owner or anyone holding attempt:read, so students can
// review their answer sheet after finishing.
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if !claims.Valid {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	attempt, err := h.attemptService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	if !authz.Allow(claims, string(model.PermissionAttemptRead), attempt.UserID, claims.UserID) {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}
