package domain

import "context"

// Wishlist is a user's saved-session list, one per profile. SessionKeys
// holds websafe session keys in append order; duplicates are allowed and
// keys may reference since-deleted sessions (no referential integrity).
// swagger:model Wishlist
type Wishlist struct {
	ID          string   `json:"id"`
	ProfileID   string   `json:"profile_id"`
	SessionKeys []string `json:"session_keys"`
}

// WishlistRepository defines the interface for wishlist storage.
type WishlistRepository interface {
	Create(ctx context.Context, wl *Wishlist) error
	GetByProfileID(ctx context.Context, profileID string) (*Wishlist, error)
	AppendSessionKey(ctx context.Context, wishlistID, sessionKey string) error
	// RemoveSessionKey deletes the first occurrence of sessionKey.
	// Returns ErrNotFound when the key is not in the list.
	RemoveSessionKey(ctx context.Context, wishlistID, sessionKey string) error
}

// WishlistService defines the business logic for wishlists.
type WishlistService interface {
	// AddSession appends the session key after checking that it resolves
	// to an existing session.
	AddSession(ctx context.Context, userID, websafeSessionKey string) (*Wishlist, error)
	DeleteSession(ctx context.Context, userID, websafeSessionKey string) (*Wishlist, error)
	Get(ctx context.Context, userID string) (*Wishlist, error)
}
