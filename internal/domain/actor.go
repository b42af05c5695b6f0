package domain

// Actor is whoever triggers a state change. Scheduled jobs act with an
// empty ID and the SYSTEM_ADMIN role.
type Actor struct {
	ID   string
	Role Role
}

var SystemActor = Actor{Role: RoleSystemAdmin}

func (a Actor) IsSystem() bool {
	return a.ID == ""
}
