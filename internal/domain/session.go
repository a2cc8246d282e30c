package domain

import (
	"context"
	"time"
)

// Session represents a talk within a conference. Its ancestor is the
// conference it belongs to.
// swagger:model Session
type Session struct {
	ID              string     `json:"id"`
	ConferenceID    string     `json:"conference_id"`
	Name            string     `json:"name"`
	Speaker         string     `json:"speaker"`
	Highlights      string     `json:"highlights"`
	TypeOfSession   string     `json:"type_of_session"`
	Date            *time.Time `json:"date"`
	StartTime       string     `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, sess *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*Session, error)
}

// SessionInput is the decoded wire form for session creation. Date uses
// YYYY-MM-DD and StartTime HH:MM.
type SessionInput struct {
	Name            string
	Speaker         string
	Highlights      string
	TypeOfSession   string
	Date            string
	StartTime       string
	DurationMinutes int
}

// SessionService defines the business logic for sessions, including the
// featured-speaker side channel.
type SessionService interface {
	Create(ctx context.Context, userID, websafeConferenceKey string, in *SessionInput) (*Session, error)
	ListByConference(ctx context.Context, websafeConferenceKey string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	// ScanFeaturedSpeaker re-queries the speaker's sessions at the
	// conference and caches a summary when more than one is found.
	// Invoked from the background task queue.
	ScanFeaturedSpeaker(ctx context.Context, speaker, conferenceID, websafeConferenceKey string) error
	// FeaturedSpeaker returns the cached summary, or "" when absent.
	FeaturedSpeaker(ctx context.Context, websafeConferenceKey string) string
}
