package service

import (
	"context"
	"fmt"

	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/store"
)

// CourseService handles course CRUD.
type CourseService struct {
	courses store.Store[model.Course]
	newID   IDGenerator
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses store.Store[model.Course], newID IDGenerator) *CourseService {
	return &CourseService{courses: courses, newID: newID}
}

// List returns all courses. Deleted-flag filtering is the caller's concern,
// matching the store port's hard-delete semantics.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courses.List(ctx)
}

// Create stores a new course. teacherID falls back to requesterID when the
// payload leaves it empty.
func (s *CourseService) Create(ctx context.Context, req model.CreateCourseRequest, requesterID string) (*model.Course, error) {
	teacherID := req.TeacherID
	if teacherID == "" {
		teacherID = requesterID
	}

	course := model.Course{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
	}

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &created, nil
}
