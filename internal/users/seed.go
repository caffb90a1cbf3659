package users

// Seed returns the built-in account set. The same records are inserted by
// the database migrations, so both repo flavors serve identical users.
func Seed() []User {
	return []User{
		{ID: "user1", Username: "john_reviewer", Email: "john@example.com", Role: RoleReviewer, Password: "pass123"},
		{ID: "user2", Username: "admin_user", Email: "admin@example.com", Role: RoleAdmin, Password: "pass123"},
		{ID: "user3", Username: "processor", Email: "proc@example.com", Role: RoleProcessor, Password: "pass123"},
	}
}
