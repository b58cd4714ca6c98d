package user

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer      Role = "CUSTOMER"
	RoleBusinessOwner Role = "BUSINESS_OWNER"
	RoleAdmin         Role = "ADMIN"
)

// ParseRole resolves a role name. An unrecognized value is a hard error.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleBusinessOwner, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid value for role: %s. Allowed values are: CUSTOMER, BUSINESS_OWNER, ADMIN", s)
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
