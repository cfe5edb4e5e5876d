// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const MaxDisplayNameLen = 64

var (
	ErrNameTooLong = errors.New("display name too long")
	ErrNameEmpty   = errors.New("display name empty")
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(id string) *User {
	return &User{ID: id}
}

// ValidateName rejects names that are empty after trimming; callers
// store the trimmed form, so uniqueness checks see the same value.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameEmpty
	}
	if len(name) > MaxDisplayNameLen {
		return ErrNameTooLong
	}
	return nil
}

func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if err := ValidateName(username); err != nil {
		return err
	}
	u.Username = username
	return nil
}
