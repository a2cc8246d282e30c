package services

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

type registrationService struct {
	ledger         domain.RegistrationLedger
	confRepo       domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	profileService domain.ProfileService
	contextTimeout time.Duration
}

func NewRegistrationService(ledger domain.RegistrationLedger,
	confRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	profileService domain.ProfileService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		ledger:         ledger,
		confRepo:       confRepo,
		profileRepo:    profileRepo,
		profileService: profileService,
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, userID, websafeConferenceKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profileService.GetOrCreate(ctx, userID); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}
	_, confID, err := keys.DecodeConference(websafeConferenceKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.ledger.Register(ctx, confID, userID)
}

func (s *registrationService) Unregister(ctx context.Context, userID, websafeConferenceKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profileService.GetOrCreate(ctx, userID); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}
	_, confID, err := keys.DecodeConference(websafeConferenceKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.ledger.Unregister(ctx, confID, userID)
}

func (s *registrationService) ListConferencesToAttend(ctx context.Context, userID string) ([]*domain.ConferenceDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profileService.GetOrCreate(ctx, userID); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	ids, err := s.ledger.ListConferenceIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	confs, err := s.confRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}

	// Preserve registration order; ListByIDs gives no ordering guarantee.
	byID := make(map[string]*domain.Conference, len(confs))
	organizerIDs := make([]string, 0, len(confs))
	seen := make(map[string]struct{})
	for _, c := range confs {
		byID[c.ID] = c
		if _, ok := seen[c.OrganizerID]; !ok {
			seen[c.OrganizerID] = struct{}{}
			organizerIDs = append(organizerIDs, c.OrganizerID)
		}
	}
	profiles, err := s.profileRepo.ListByIDs(ctx, organizerIDs)
	if err != nil {
		return nil, fmt.Errorf("list organizer profiles: %w", err)
	}

	details := make([]*domain.ConferenceDetails, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		name := ""
		if p, ok := profiles[c.OrganizerID]; ok {
			name = p.DisplayName
		}
		details = append(details, &domain.ConferenceDetails{Conference: c, OrganizerDisplayName: name})
	}
	return details, nil
}
