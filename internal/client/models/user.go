// Package models defines the documents exchanged with the events backend
// and held in client state.
package models

import "time"

// Role decides what a user may do.
type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// User is an account document from the "users" collection.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Password holds an argon2id encoded hash, never the plain text.
	Password string `json:"password"`

	Role Role `json:"role"`

	// IsVerified is set by an admin; verified users publish without moderation.
	IsVerified  bool      `json:"isVerified"`
	CompanyName string    `json:"companyName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsAdmin reports whether u has the admin role. A nil user is not an admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// PublishesDirectly reports whether events created by u skip moderation.
func (u *User) PublishesDirectly() bool {
	return u != nil && (u.Role == RoleAdmin || u.IsVerified)
}
