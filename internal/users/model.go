package users

// Role names the three seeded account roles.
const (
	RoleAdmin     = "admin"
	RoleReviewer  = "reviewer"
	RoleProcessor = "processor"
)

// User is an account record. Passwords are plaintext seed values; this is
// mock authentication, never echoed to callers.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"-"`
}

// PublicUser is the outward-facing projection of a user.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toPublic(u User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
