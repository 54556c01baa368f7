package model

// User represents a platform account. Identity itself lives in the external
// auth service; this record carries profile data and role/block bookkeeping.
type User struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"` // Student, Teacher, Admin
	Blocked  bool     `json:"blocked"`
}

// Key returns the entity store key.
func (u User) Key() string { return u.ID }

// UpdateUserRequest is the payload for updating a user profile.
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
}
