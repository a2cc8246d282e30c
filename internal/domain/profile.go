package domain

import (
	"context"
	"time"
)

// Tee shirt size codes accepted on a profile.
const TeeShirtSizeNotSpecified = "NOT_SPECIFIED"

// TeeShirtSizes is the fixed set of valid shirt-size preference codes.
var TeeShirtSizes = []string{
	TeeShirtSizeNotSpecified,
	"XS_M", "XS_W",
	"S_M", "S_W",
	"M_M", "M_W",
	"L_M", "L_W",
	"XL_M", "XL_W",
	"XXL_M", "XXL_W",
	"XXXL_M", "XXXL_W",
}

// ValidTeeShirtSize reports whether code is one of TeeShirtSizes.
func ValidTeeShirtSize(code string) bool {
	for _, s := range TeeShirtSizes {
		if s == code {
			return true
		}
	}
	return false
}

// Profile represents a user's conference profile. The profile shares its
// ID with the account it belongs to and is created lazily, together with
// an empty wishlist, on first authenticated profile access.
// swagger:model Profile
type Profile struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	MainEmail    string    `json:"main_email"`
	TeeShirtSize string    `json:"tee_shirt_size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile for the given account ID.
func NewProfile(id, displayName, mainEmail, teeShirtSize string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		ID:           id,
		DisplayName:  displayName,
		MainEmail:    mainEmail,
		TeeShirtSize: teeShirtSize,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	// ListByIDs returns the profiles for the given IDs, keyed by ID.
	// Missing IDs are simply absent from the result.
	ListByIDs(ctx context.Context, ids []string) (map[string]*Profile, error)
}

// ProfileService defines the business logic for user profiles.
type ProfileService interface {
	// GetOrCreate returns the user's profile, creating it (with an empty
	// wishlist) from the account's email if it does not exist yet.
	GetOrCreate(ctx context.Context, userID string) (*Profile, error)
	// Save applies the user-modifiable fields (display name, shirt size)
	// and returns the updated profile. Empty fields are left unchanged.
	Save(ctx context.Context, userID, displayName, teeShirtSize string) (*Profile, error)
}
