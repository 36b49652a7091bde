package domain

import "time"

// Profile holds the public-facing details a user maintains about themselves.
// A blank profile is created alongside every new user.
type Profile struct {
	ID          string
	UserID      string
	FullName    *string
	PhoneNumber *string
	Bio         *string
	Image       *string
	// Username and Email are denormalized from the owning user for public
	// profile views; the users table remains the source of truth.
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileUpdate captures the owner-editable subset of a profile. Nil fields
// are left untouched.
type ProfileUpdate struct {
	FullName    *string
	PhoneNumber *string
	Bio         *string
	Image       *string
}
