package models

const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
	RoleUser     = "user"
)

// StaffUser is a backend staff account. The directory is seeded at startup;
// there is no self-service signup for this API.
type StaffUser struct {
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Disabled     bool
	Roles        []string
}

func (u *StaffUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *StaffUser) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}
