package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned on signup when the email is taken.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrInvalidCredentials is returned on login with a wrong email/password
// pair. It deliberately does not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account represents an authentication account. Profiles share the
// account's ID; everything beyond credentials lives on the Profile.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountRepository defines the interface for account storage.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// AuthService defines signup and login for the API's bearer tokens.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}
