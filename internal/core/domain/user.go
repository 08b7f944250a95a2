package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models a registered account. The password only ever exists here as a
// bcrypt hash; plaintext never reaches the domain layer.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	FirstName    string     `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Bio          string     `json:"bio,omitempty" bson:"bio,omitempty"`
	Country      string     `json:"country,omitempty" bson:"country,omitempty"`
	City         string     `json:"city,omitempty" bson:"city,omitempty"`
	Role         string     `json:"role" bson:"role"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Identity is the per-request resolved caller. The authentication gate binds
// at most one instance per request; downstream code treats it as read-only.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
