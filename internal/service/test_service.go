package service

import (
	"context"
	"fmt"

	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/store"
)

// TestService handles test assembly and reads.
type TestService struct {
	tests store.Store[model.Test]
	newID IDGenerator
}

// NewTestService creates a new TestService.
func NewTestService(tests store.Store[model.Test], newID IDGenerator) *TestService {
	return &TestService{tests: tests, newID: newID}
}

// List returns all tests.
func (s *TestService) List(ctx context.Context) ([]model.Test, error) {
	return s.tests.List(ctx)
}

// Create stores a new test.
func (s *TestService) Create(ctx context.Context, req model.CreateTestRequest) (*model.Test, error) {
	test := model.Test{
		ID:          s.newID(),
		CourseID:    req.CourseID,
		Title:       req.Title,
		QuestionIDs: req.QuestionIDs,
		Active:      req.Active,
	}

	created, err := s.tests.Create(ctx, test)
	if err != nil {
		return nil, fmt.Errorf("create test: %w", err)
	}
	return &created, nil
}

// Get returns a test by id.
func (s *TestService) Get(ctx context.Context, id string) (*model.Test, error) {
	test, ok, err := s.tests.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: test %q", ErrNotFound, id)
	}
	return &test, nil
}
