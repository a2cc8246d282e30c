package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an authenticated user is not allowed
	// to perform the operation (e.g. non-organizer updating a conference).
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for missing required fields or
	// unparseable values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyRegistered is returned when a user registers twice for
	// the same conference.
	ErrAlreadyRegistered = errors.New("already registered for this conference")
	// ErrNoSeatsAvailable is returned when a conference is sold out.
	ErrNoSeatsAvailable = errors.New("no seats available")
)
