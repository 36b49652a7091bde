package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// User mirrors the persisted representation in the users table.
type User struct {
	ID            string
	Email         string
	Username      string
	EmailVerified bool
	IsActive      bool
	IsSuperuser   bool
	PasswordHash  string
	Salt          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Credential carries the stored password material for a user. The plaintext
// password never appears here; the salt is generated exactly once at
// registration and is immutable afterwards.
type Credential struct {
	Salt         string
	PasswordHash string
}

// Credential projects the password material out of a user record.
func (u User) Credential() Credential {
	return Credential{Salt: u.Salt, PasswordHash: u.PasswordHash}
}

// ValidateUsername enforces the username policy: at least 3 characters,
// alphanumeric plus '-' and '_'.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, '-' and '_'")
	}
	return nil
}
