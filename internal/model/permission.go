package model

// Permission represents a string code for a specific system action.
// Codes travel inside claims issued by the auth service; the evaluator in
// internal/authz decides whether a claim set grants one of these.
type Permission string

const (
	// PermissionUserListRead allows listing all users.
	PermissionUserListRead Permission = "user:list:read"

	// PermissionUserDataRead allows viewing a user's full record.
	PermissionUserDataRead Permission = "user:data:read"

	// PermissionUserFullNameRead allows viewing another user's full name.
	PermissionUserFullNameRead Permission = "user:fullName:read"

	// PermissionUserFullNameWrite allows editing a user's full name.
	PermissionUserFullNameWrite Permission = "user:fullName:write"

	// PermissionCourseAdd allows creating courses.
	PermissionCourseAdd Permission = "course:add"

	// PermissionQuestionCreate allows authoring questions.
	PermissionQuestionCreate Permission = "quest:create"

	// PermissionQuestionRead allows reading questions authored by others.
	PermissionQuestionRead Permission = "quest:read"

	// PermissionTestCreate allows assembling tests.
	PermissionTestCreate Permission = "test:create"

	// PermissionCourseTestRead allows reading a course's tests.
	PermissionCourseTestRead Permission = "course:test:read"

	// PermissionAttemptRead allows reading attempts owned by others.
	PermissionAttemptRead Permission = "attempt:read"
)

// RoleAdmin is the unconditional superuser role recognized by the
// permission evaluator.
const RoleAdmin = "Admin"
