package domain

import "context"

// RegistrationLedger is the transactional seat-accounting boundary.
// Register and Unregister run the read-check-write sequence across the
// registration row and the conference's seat counter as a single
// all-or-nothing transaction.
type RegistrationLedger interface {
	// Register registers the profile for the conference. It fails with
	// ErrNotFound if the conference does not exist, ErrAlreadyRegistered
	// on a duplicate registration, and ErrNoSeatsAvailable when sold
	// out. On success one seat is taken and true is returned.
	Register(ctx context.Context, conferenceID, profileID string) (bool, error)
	// Unregister removes the profile's registration and returns one
	// seat. Returns false (and no error) when the profile was not
	// registered; ErrNotFound when the conference does not exist.
	Unregister(ctx context.Context, conferenceID, profileID string) (bool, error)
	// ListConferenceIDs returns the IDs of the conferences the profile
	// is registered for, oldest registration first.
	ListConferenceIDs(ctx context.Context, profileID string) ([]string, error)
}

// RegistrationService defines attendee-facing registration operations.
type RegistrationService interface {
	Register(ctx context.Context, userID, websafeConferenceKey string) (bool, error)
	Unregister(ctx context.Context, userID, websafeConferenceKey string) (bool, error)
	ListConferencesToAttend(ctx context.Context, userID string) ([]*ConferenceDetails, error)
}
