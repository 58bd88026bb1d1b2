package enums

import "fmt"

// Role is the account role carried in access tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	r := Role(value)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q", value)
	}
	return r, nil
}

// RoleFor maps the persisted admin flag onto a Role.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}
