package service

import (
	"context"
	"fmt"

	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/store"
)

// QuestionService handles question authoring and reads.
type QuestionService struct {
	questions store.Store[model.Question]
	newID     IDGenerator
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions store.Store[model.Question], newID IDGenerator) *QuestionService {
	return &QuestionService{questions: questions, newID: newID}
}

// Create stores a new question authored by authorID. Version starts at 1 and
// increases on content edits, so attempts can record what they saw.
func (s *QuestionService) Create(ctx context.Context, req model.CreateQuestionRequest, authorID string) (*model.Question, error) {
	question := model.Question{
		ID:           s.newID(),
		AuthorID:     authorID,
		Title:        req.Title,
		Text:         req.Text,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Version:      1,
	}

	created, err := s.questions.Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &created, nil
}

// Get returns a question by id.
func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	question, ok, err := s.questions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: question %q", ErrNotFound, id)
	}
	return &question, nil
}
