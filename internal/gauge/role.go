package gauge

import "strings"

// Role is a symbolic paint name. Concrete colors are chosen by the host's
// theme at render time.
type Role string

const (
	RoleSuccess       Role = "success"
	RoleWarning       Role = "warning"
	RoleDanger        Role = "danger"
	RoleInfo          Role = "info"
	RolePrimary       Role = "primary"
	RoleBorder        Role = "border"
	RoleText          Role = "text"
	RoleTextSecondary Role = "text-secondary"
)

// Roles lists every role a theme must be able to resolve.
var Roles = []Role{
	RoleSuccess, RoleWarning, RoleDanger, RoleInfo, RolePrimary,
	RoleBorder, RoleText, RoleTextSecondary,
}

// ParseRole maps a zone color tag to a Role. Unknown tags become primary.
func ParseRole(tag string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(tag))); r {
	case RoleSuccess, RoleWarning, RoleDanger, RoleInfo, RolePrimary,
		RoleBorder, RoleText, RoleTextSecondary:
		return r
	case "textsecondary":
		return RoleTextSecondary
	default:
		return RolePrimary
	}
}

// Known reports whether r is one of the defined roles.
func (r Role) Known() bool {
	for _, k := range Roles {
		if r == k {
			return true
		}
	}
	return false
}

// Fill returns r, or primary when r is not a known zone color.
func (r Role) Fill() Role {
	if r.Known() {
		return r
	}
	return RolePrimary
}
