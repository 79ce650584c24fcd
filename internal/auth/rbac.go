package auth

import "strings"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleViewer    Role = "viewer"
)

func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleModerator):
		return RoleModerator
	default:
		return RoleViewer
	}
}

func HasRole(role string, allowed ...Role) bool {
	if len(allowed) == 0 {
		return false
	}
	current := NormalizeRole(role)
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}

// CanManageContent reports whether the role may create, update, or delete
// club content. Matches the original admin-or-moderator gate.
func CanManageContent(role string) bool {
	return HasRole(role, RoleAdmin, RoleModerator)
}
