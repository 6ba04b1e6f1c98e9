package auth

import (
	"regexp"
	"strings"

	domerrors "github.com/pksaconstruction/pksa-api/internal/domain/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Login checks submitted credentials against the configured admin account.
// There is exactly one admin identity; no user table, no password hashing.
type Login struct {
	adminEmail    string
	adminPassword string
}

func NewLogin(adminEmail, adminPassword string) *Login {
	return &Login{adminEmail: adminEmail, adminPassword: adminPassword}
}

// Execute returns ErrInvalidCredentials unless email matches the admin email
// case-insensitively, the password matches exactly, and email is well-formed.
// The caller must not report which check failed.
func (l *Login) Execute(email, password string) error {
	if !emailPattern.MatchString(email) {
		return domerrors.ErrInvalidCredentials
	}
	if !strings.EqualFold(email, l.adminEmail) || password != l.adminPassword {
		return domerrors.ErrInvalidCredentials
	}
	return nil
}
