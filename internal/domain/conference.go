package domain

import (
	"context"
	"time"

	"conferencecentral/internal/query"
)

// Defaults applied to a conference when the corresponding fields are
// missing on creation.
const DefaultCity = "Default City"

// DefaultTopics is the topics list applied when none is provided.
var DefaultTopics = []string{"Default", "Topic"}

// Conference represents an event created by an organizer. Its ancestor
// is the organizer's profile; seats_available is maintained by the
// registration ledger and never leaves the 0..MaxAttendees range.
// swagger:model Conference
type Conference struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	City           string     `json:"city"`
	Topics         []string   `json:"topics"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ConferenceDetails bundles a conference with its organizer's display
// name for API responses.
type ConferenceDetails struct {
	Conference           *Conference `json:"conference"`
	OrganizerDisplayName string      `json:"organizer_display_name"`
}

// ConferenceUpdate holds the optional fields of an update; nil pointers
// leave the stored value unchanged.
type ConferenceUpdate struct {
	Name         *string
	Description  *string
	City         *string
	Topics       []string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int
}

// ConferenceRepository defines the interface for conference storage.
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Conference, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	// Update applies the non-nil fields of upd inside a transaction that
	// locks the conference row, re-deriving month when StartDate is set.
	Update(ctx context.Context, id string, upd *ConferenceUpdate) (*Conference, error)
	// Query executes a compiled filter query.
	Query(ctx context.Context, q *query.Compiled) ([]*Conference, error)
	// ListNearlySoldOut returns conferences with 0 < seats_available <= 5.
	ListNearlySoldOut(ctx context.Context) ([]*Conference, error)
}

// ConferenceService defines the business logic for conferences.
type ConferenceService interface {
	Create(ctx context.Context, userID string, in *ConferenceInput) (*Conference, error)
	Update(ctx context.Context, userID, websafeConferenceKey string, in *ConferenceUpdateInput) (*Conference, error)
	Get(ctx context.Context, websafeConferenceKey string) (*ConferenceDetails, error)
	ListCreated(ctx context.Context, userID string) ([]*ConferenceDetails, error)
	Query(ctx context.Context, filters []query.Filter) ([]*ConferenceDetails, error)
	// RecomputeAnnouncement refreshes the nearly-sold-out announcement
	// cache entry and returns the current announcement text.
	RecomputeAnnouncement(ctx context.Context) (string, error)
	// Announcement returns the cached announcement, or "" when absent.
	Announcement(ctx context.Context) string
}

// ConferenceInput is the decoded wire form for conference creation.
// Dates use the YYYY-MM-DD wire format.
type ConferenceInput struct {
	Name         string
	Description  string
	City         string
	Topics       []string
	StartDate    string
	EndDate      string
	MaxAttendees int
}

// ConferenceUpdateInput is the decoded wire form for conference updates.
// Nil pointers mean "leave unchanged".
type ConferenceUpdateInput struct {
	Name         *string
	Description  *string
	City         *string
	Topics       []string
	StartDate    *string
	EndDate      *string
	MaxAttendees *int
}
