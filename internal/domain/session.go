package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// Session identifies the caller of every order and menu operation. It
// is threaded explicitly instead of living in ambient state.
type Session struct {
	UserID string
	Role   Role
}

func (s Session) IsStaff() bool {
	return s.Role == RoleStaff
}
