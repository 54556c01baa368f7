package authz

// Allow decides whether the given claims may perform an action guarded by
// requiredPermission on a resource owned by resourceOwnerID.
//
// Evaluation order, first match wins:
//  1. Invalid claims are always denied.
//  2. The Admin role is an unconditional superuser.
//  3. A non-empty requiredPermission present in the claims grants access.
//  4. A non-empty requiredPermission with a non-empty resourceOwnerID equal
//     to requesterID grants access (owner-self rule).
//  5. Everything else is denied.
//
// An empty requiredPermission can only pass via rules 1-2; callers that
// intend a permission check must never pass an empty code.
func Allow(claims Claims, requiredPermission, resourceOwnerID, requesterID string) bool {
	if !claims.Valid {
		return false
	}
	if contains(claims.Roles, "Admin") {
		return true
	}
	if requiredPermission != "" && contains(claims.Permissions, requiredPermission) {
		return true
	}
	if requiredPermission != "" && resourceOwnerID != "" && resourceOwnerID == requesterID {
		return true
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
