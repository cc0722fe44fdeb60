package domain

// User roles.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID       string `db:"id" json:"id"`
	Email    string `db:"email" json:"email"`
	Name     string `db:"name" json:"name"`
	Hash     string `db:"password_hash" json:"-"`
	Role     string `db:"role" json:"role"`
	ClientID string `db:"client_id" json:"clientId,omitempty"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// OwnsClient reports whether the user is bound to the given client.
func (u *User) OwnsClient(clientID string) bool {
	return u != nil && u.ClientID != "" && u.ClientID == clientID
}
