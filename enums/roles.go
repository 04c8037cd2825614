package enums

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsAdmin reports whether the role grants the admin landing page. Unknown roles are members.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
