package model

// Course groups tests under a single teacher.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TeacherID   string `json:"teacher_id"`
	Deleted     bool   `json:"deleted"`
}

// Key returns the entity store key.
func (c Course) Key() string { return c.ID }

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	TeacherID   string `json:"teacher_id"` // Defaults to the requester when empty
}
