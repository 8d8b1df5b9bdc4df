package model

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// Principal is an already-authenticated caller. Identity resolution happens
// outside this service; every entry point receives the principal explicitly
// instead of pulling it from ambient state.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
