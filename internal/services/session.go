package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

const startTimeLayout = "15:04"

type sessionService struct {
	sessionRepo    domain.SessionRepository
	confRepo       domain.ConferenceRepository
	queue          domain.TaskQueue
	cache          domain.Cache
	contextTimeout time.Duration
}

func NewSessionService(sessionRepo domain.SessionRepository,
	confRepo domain.ConferenceRepository,
	queue domain.TaskQueue,
	cache domain.Cache,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		confRepo:       confRepo,
		queue:          queue,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func (s *sessionService) Create(ctx context.Context, userID, websafeConferenceKey string, in *domain.SessionInput) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Name == "" {
		return nil, fmt.Errorf("%w: session 'name' field required", domain.ErrInvalidInput)
	}
	if in.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration cannot be negative", domain.ErrInvalidInput)
	}

	_, confID, err := keys.DecodeConference(websafeConferenceKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	conf, err := s.confRepo.GetByID(ctx, confID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	// Only the conference organizer may add sessions.
	if conf.OrganizerID != userID {
		return nil, domain.ErrForbidden
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	startTime := in.StartTime
	if startTime != "" {
		if _, err := time.Parse(startTimeLayout, startTime); err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q, want HH:MM", domain.ErrInvalidInput, startTime)
		}
	}

	now := time.Now()
	sess := &domain.Session{
		ConferenceID:    conf.ID,
		Name:            in.Name,
		Speaker:         in.Speaker,
		Highlights:      in.Highlights,
		TypeOfSession:   in.TypeOfSession,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// The featured-speaker check runs off the queue after the insert has
	// committed, so the scan always sees this session.
	if sess.Speaker != "" {
		s.queue.EnqueueSpeakerCheck(domain.SpeakerCheckTask{
			Speaker:              sess.Speaker,
			ConferenceID:         conf.ID,
			WebsafeConferenceKey: keys.ForConference(conf.OrganizerID, conf.ID).Encode(),
		})
	}
	return sess, nil
}

func (s *sessionService) ListByConference(ctx context.Context, websafeConferenceKey string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.resolveConference(ctx, websafeConferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conf.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListByConferenceAndType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.resolveConference(ctx, websafeConferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceAndType(ctx, conf.ID, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions by type: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speaker)
	if err != nil {
		return nil, fmt.Errorf("list sessions by speaker: %w", err)
	}
	return sessions, nil
}

// ScanFeaturedSpeaker re-queries the speaker's sessions at the conference
// and caches a summary when the speaker now has more than one. The cache
// entry is only ever overwritten, never cleared, so the last featured
// speaker stays visible.
func (s *sessionService) ScanFeaturedSpeaker(ctx context.Context, speaker, conferenceID, websafeConferenceKey string) error {
	sessions, err := s.sessionRepo.ListByConferenceAndSpeaker(ctx, conferenceID, speaker)
	if err != nil {
		return fmt.Errorf("list speaker sessions: %w", err)
	}
	if len(sessions) <= 1 {
		return nil
	}
	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}
	summary := fmt.Sprintf("Speaker: %s. Sessions: %s", speaker, strings.Join(names, ", "))
	s.cache.Set(domain.FeaturedSpeakerCacheKey(websafeConferenceKey), summary)
	return nil
}

func (s *sessionService) FeaturedSpeaker(ctx context.Context, websafeConferenceKey string) string {
	// Canonicalize so any well-formed key for the conference hits the
	// same cache entry.
	organizerID, confID, err := keys.DecodeConference(websafeConferenceKey)
	if err != nil {
		return ""
	}
	canonical := keys.ForConference(organizerID, confID).Encode()
	if v, ok := s.cache.Get(domain.FeaturedSpeakerCacheKey(canonical)); ok {
		return v
	}
	return ""
}

func (s *sessionService) resolveConference(ctx context.Context, websafeConferenceKey string) (*domain.Conference, error) {
	_, confID, err := keys.DecodeConference(websafeConferenceKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	conf, err := s.confRepo.GetByID(ctx, confID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return conf, nil
}
