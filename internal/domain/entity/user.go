package entity

import (
	"errors"
	"strings"
	"time"
)

// User is an account that can sign in and record transactions. The
// struct's JSON form is the storage record; API responses use the
// handler DTOs, so the password hash never leaves the repository.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate ensures the user meets all requirements
func (u *User) Validate() error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return errors.New("a valid email address is required")
	}

	if u.Name == "" {
		return errors.New("name must not be empty")
	}

	return nil
}
