package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrUserEmailNotUnique = errors.New("a user with this email already exists")

// User represents a person using Planify.
//
// Identity is asserted by the authenticating reverse proxy, the backend
// provisions the record on first sight and treats it as read-only apart
// from profile fields.
type User struct {
	DefaultModel
	Email     string `gorm:"uniqueIndex"`
	FullName  string
	Onboarded bool
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FullName = strings.TrimSpace(u.FullName)

	return nil
}
