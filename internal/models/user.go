// Package models contains data structures for the application's domain entities.
package models

import "time"

// Role identifies how a user participates: helpers offer assistance,
// askers post problems.
type Role string

const (
	RoleHelper Role = "helper"
	RoleAsker  Role = "asker"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleHelper || r == RoleAsker
}

// Location is a geographic point with a human-readable address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// User represents a member of the community.
// HelpCount is maintained for helpers, ProblemCount for askers; Rating only
// applies to helpers.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio"`
	Role         Role      `json:"role"`
	Location     Location  `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
	HelpCount    int       `json:"helpCount,omitempty"`
	ProblemCount int       `json:"problemCount,omitempty"`
	Rating       float64   `json:"rating,omitempty"`

	// PasswordHash is empty for the seeded demo identities, which accept any
	// password on login. Identities created through registration always carry
	// a bcrypt hash.
	PasswordHash string `json:"-"`
}

// UserPatch holds the self-editable profile fields. Nil fields are left
// untouched by an update.
type UserPatch struct {
	Name     *string   `json:"name"`
	Avatar   *string   `json:"avatar"`
	Bio      *string   `json:"bio"`
	Location *Location `json:"location"`
}

// Clone returns a copy of the user safe to hand outside the owning store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
