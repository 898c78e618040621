package auth

import (
	"fmt"
	"strings"
)

// Role is a closed enumeration of staff roles. Roles arrive on the wire as
// free-form strings and are parsed at the boundary; business logic only ever
// compares Role values.
type Role string

const (
	RoleDoctor       Role = "doctor"
	RoleAdmin        Role = "admin"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RoleLabTech      Role = "lab_technician"
)

// ParseRole normalizes a raw role string into a Role. Matching is
// case-insensitive and tolerates surrounding whitespace. "administrator" is
// accepted as a synonym for admin. Unrecognized values return an error.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "doctor":
		return RoleDoctor, nil
	case "admin", "administrator":
		return RoleAdmin, nil
	case "nurse":
		return RoleNurse, nil
	case "receptionist":
		return RoleReceptionist, nil
	case "lab_technician", "lab technician":
		return RoleLabTech, nil
	default:
		return "", fmt.Errorf("unrecognized role %q", raw)
	}
}

func (r Role) String() string {
	return string(r)
}
