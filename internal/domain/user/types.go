package user

type Role string

const (
	// RoleCustomer reserves seats and redeems nothing; ownership checks apply.
	RoleCustomer Role = "customer"
	// RoleStaff schedules screenings and scans tickets at the venue.
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// AtLeast implements the customer < staff < admin hierarchy.
func (r Role) AtLeast(other Role) bool {
	return r.level() >= other.level()
}

func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleStaff:
		return 2
	case RoleCustomer:
		return 1
	default:
		return 0
	}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}
