package domain

import "time"

// User represents a registered author. PasswordHash never leaves the process:
// it is excluded from JSON and from every transport DTO.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Posts    []Post    `json:"posts,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched (merge, not replace).
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
