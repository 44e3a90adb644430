package domain

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleGuest      Role = "guest"
)

// Actor is the identity supplied by the session provider for one call.
type Actor struct {
	ID   uint64
	Role Role
}

func Guest() Actor {
	return Actor{Role: RoleGuest}
}

func (a Actor) IsClient() bool {
	return a.Role == RoleClient && a.ID != 0
}

func (a Actor) IsFreelancer() bool {
	return a.Role == RoleFreelancer && a.ID != 0
}

func ParseRole(value string) Role {
	switch Role(value) {
	case RoleClient, RoleFreelancer:
		return Role(value)
	default:
		return RoleGuest
	}
}
