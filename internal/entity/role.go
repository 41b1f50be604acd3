package entity

// Role is a closed set. Do not compare against raw strings outside this
// package; use the capability table or ValidateHierarchy.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleSalesHead Role = "SalesHead"
	RoleBDM       Role = "BDM"
	RoleBDE       Role = "BDE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesHead, RoleBDM, RoleBDE:
		return true
	}
	return false
}

type Capabilities struct {
	CanViewAll     bool
	CanEditAll     bool
	CanCreateUsers bool
}

var roleCapabilities = map[Role]Capabilities{
	RoleAdmin:     {CanViewAll: true, CanEditAll: true, CanCreateUsers: true},
	RoleSalesHead: {CanViewAll: true, CanEditAll: true, CanCreateUsers: false},
	RoleBDM:       {CanViewAll: false, CanEditAll: false, CanCreateUsers: false},
	RoleBDE:       {CanViewAll: false, CanEditAll: false, CanCreateUsers: false},
}

func (r Role) Capabilities() Capabilities {
	return roleCapabilities[r]
}

// allowedSuperiors maps each role to the roles allowed to manage it.
// Admin reports to no one.
var allowedSuperiors = map[Role][]Role{
	RoleBDE:       {RoleBDM, RoleSalesHead, RoleAdmin},
	RoleBDM:       {RoleSalesHead, RoleAdmin},
	RoleSalesHead: {RoleAdmin},
	RoleAdmin:     {},
}

// ValidateHierarchy reports whether manager may manage subordinate.
func ValidateHierarchy(subordinate, manager Role) bool {
	for _, allowed := range allowedSuperiors[subordinate] {
		if manager == allowed {
			return true
		}
	}
	return false
}
