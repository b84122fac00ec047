package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleStore = "store"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser || role == RoleStore
}

// User models an authenticated actor. A user with role "store" doubles as the
// store entity: its id is the store identifier and its name/address are the
// store's displayed attributes.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
