package domain

import "time"

// CleaningType enumerates the supported job categories.
type CleaningType string

const (
	CleaningTypeDustUp    CleaningType = "dust_up"
	CleaningTypeSpotClean CleaningType = "spot_clean"
	CleaningTypeFullClean CleaningType = "full_clean"
)

// DefaultCleaningType is applied when a listing does not specify a type.
const DefaultCleaningType = CleaningTypeSpotClean

// ValidCleaningType reports whether t names a known cleaning type.
func ValidCleaningType(t CleaningType) bool {
	switch t {
	case CleaningTypeDustUp, CleaningTypeSpotClean, CleaningTypeFullClean:
		return true
	}
	return false
}

// Cleaning is a job listing owned by a single user.
type Cleaning struct {
	ID           string
	Name         string
	Description  *string
	Price        float64
	CleaningType CleaningType
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CleaningUpdate carries the fields an owner may change on a listing. Nil
// fields are left untouched.
type CleaningUpdate struct {
	Name         *string
	Description  *string
	Price        *float64
	CleaningType *CleaningType
}
