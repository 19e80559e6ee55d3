package model

import (
	"errors"
	"time"
)

// User represents an account in the system
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	FirstName      *string   `db:"first_name" json:"first_name"`
	LastName       *string   `db:"last_name" json:"last_name"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url"`
	AvatarKey      *string   `db:"avatar_key" json:"-"`
	IsStaff        bool      `db:"is_staff" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// DisplayName returns "First Last" when set, the username otherwise.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	default:
		return u.Username
	}
}

// RegisterRequest represents the data needed to create a new account
type RegisterRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"-"`
	AvatarKey *string `json:"-"`
}

// LoginRequest represents the data needed to log in.
// Username accepts either a username or an email address; the service
// branches the lookup on the presence of '@'.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateAccountRequest carries a self-service profile update.
type UpdateAccountRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"-"`
	AvatarKey *string `json:"-"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when attempting to create a user with a taken email
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStaffOnly is returned when a non-staff actor attempts an administrative action
	ErrStaffOnly = errors.New("staff permission required")
)
