package model

// Role is an account role. Roles form a total order: RoleUser < RoleAdmin.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Action enumerates the business actions gated by role.
type Action string

const (
	ActionViewDashboard        Action = "viewDashboard"
	ActionEditOwnProfile       Action = "editOwnProfile"
	ActionViewReports          Action = "viewReports"
	ActionManageUsers          Action = "manageUsers"
	ActionManageSystemSettings Action = "manageSystemSettings"
)

var roleRank = map[Role]int{
	RoleUser:  0,
	RoleAdmin: 1,
}

var actionPermissions = map[Action][]Role{
	ActionViewDashboard:        {RoleUser, RoleAdmin},
	ActionEditOwnProfile:       {RoleUser, RoleAdmin},
	ActionViewReports:          {RoleAdmin},
	ActionManageUsers:          {RoleAdmin},
	ActionManageSystemSettings: {RoleAdmin},
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasRole reports whether current meets or exceeds minimum in the role order.
// Unknown roles are always denied.
func HasRole(current, minimum Role) bool {
	cur, ok := roleRank[current]
	if !ok {
		return false
	}
	min, ok := roleRank[minimum]
	if !ok {
		return false
	}
	return cur >= min
}

// Can reports whether the role is permitted to perform the action.
func Can(role Role, action Action) bool {
	for _, allowed := range actionPermissions[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Permission describes one entry of the action catalog for a role.
type Permission struct {
	Key     Action `json:"key"`
	Allowed bool   `json:"allowed"`
}

// Permissions returns the full action catalog resolved for a role.
func Permissions(role Role) []Permission {
	actions := []Action{
		ActionViewDashboard,
		ActionEditOwnProfile,
		ActionViewReports,
		ActionManageUsers,
		ActionManageSystemSettings,
	}

	out := make([]Permission, 0, len(actions))
	for _, a := range actions {
		out = append(out, Permission{Key: a, Allowed: Can(role, a)})
	}
	return out
}
