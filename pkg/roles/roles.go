package roles

// Role is the permission level of a user. The two roles are disjoint: a
// manager does not inherit technician screens, nor the other way around.
type Role string

const (
	Technician Role = "technician"
	Manager    Role = "manager"
)

func (r Role) IsValid() bool {
	switch r {
	case Technician, Manager:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
