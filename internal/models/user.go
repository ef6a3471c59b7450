package models

import (
	"time"
)

type User struct {
	ID             int64      `json:"id" db:"id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"` // Never serialize in JSON
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin      *time.Time `json:"last_login,omitempty" db:"last_login"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	EmailConfirmed bool       `json:"email_confirmed" db:"email_confirmed"`

	// Security tracking
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LockoutEnd          *time.Time `json:"-" db:"lockout_end"`
}

// UserSummary is the user payload returned alongside issued tokens.
type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// FullName is the display name placed into the token's name claim.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Locked reports whether the account is locked out at the given instant.
func (u *User) Locked(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}
