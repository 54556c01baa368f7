package model

// Test is an assembled question set within a course. QuestionIDs defines the
// attempt question order. Active gates attempt creation.
type Test struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"course_id"`
	Title       string   `json:"title"`
	QuestionIDs []string `json:"question_ids"`
	Active      bool     `json:"active"`
	Deleted     bool     `json:"deleted"`
}

// Key returns the entity store key.
func (t Test) Key() string { return t.ID }

// CreateTestRequest is the payload for creating a test.
type CreateTestRequest struct {
	CourseID    string   `json:"course_id" binding:"required"`
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	QuestionIDs []string `json:"question_ids"`
	Active      bool     `json:"active"`
}
