package authz

import "time"

// Claims is the verified result of a bearer-token check, produced fresh per
// request by the claims resolver and never persisted.
//
// When Valid is false no other field may be trusted; resolvers return the
// zero value for everything else in that case.
type Claims struct {
	Valid       bool
	UserID      string
	Roles       []string
	Permissions []string
	// ExpiresAt is carried for observability. The evaluator does not check
	// it locally; expiry enforcement belongs to the auth service.
	ExpiresAt time.Time
}

// Invalid returns the canonical invalid assertion.
func Invalid() Claims {
	return Claims{}
}
