package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
	"conferencecentral/internal/query"
)

const dateLayout = "2006-01-02"

// announcementPrefix heads the nearly-sold-out announcement text.
const announcementPrefix = "Last chance to attend! The following conferences are nearly sold out: "

type conferenceService struct {
	confRepo       domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	profileService domain.ProfileService
	queue          domain.TaskQueue
	cache          domain.Cache
	contextTimeout time.Duration
}

func NewConferenceService(confRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	profileService domain.ProfileService,
	queue domain.TaskQueue,
	cache domain.Cache,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		confRepo:       confRepo,
		profileRepo:    profileRepo,
		profileService: profileService,
		queue:          queue,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) Create(ctx context.Context, userID string, in *domain.ConferenceInput) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Name == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}
	if in.MaxAttendees < 0 {
		return nil, fmt.Errorf("%w: max attendees cannot be negative", domain.ErrInvalidInput)
	}

	// Make sure the organizer's profile exists; it also carries the email
	// the confirmation goes to.
	profile, err := s.profileService.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get organizer profile: %w", err)
	}

	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	conf := &domain.Conference{
		OrganizerID:    userID,
		Name:           in.Name,
		Description:    in.Description,
		City:           in.City,
		Topics:         in.Topics,
		StartDate:      startDate,
		EndDate:        endDate,
		MaxAttendees:   in.MaxAttendees,
		SeatsAvailable: in.MaxAttendees,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if conf.City == "" {
		conf.City = domain.DefaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = append([]string{}, domain.DefaultTopics...)
	}
	if startDate != nil {
		conf.Month = int(startDate.Month())
	}

	if err := s.confRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	s.queue.EnqueueConfirmationEmail(domain.ConfirmationEmailTask{
		Email:          profile.MainEmail,
		ConferenceName: conf.Name,
		ConferenceInfo: describeConference(conf),
	})
	return conf, nil
}

func (s *conferenceService) Update(ctx context.Context, userID, websafeConferenceKey string, in *domain.ConferenceUpdateInput) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

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
	if conf.OrganizerID != userID {
		return nil, domain.ErrForbidden
	}

	upd := &domain.ConferenceUpdate{
		Name:        in.Name,
		Description: in.Description,
		City:        in.City,
		Topics:      in.Topics,
	}
	if in.Name != nil && *in.Name == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}
	if in.StartDate != nil {
		t, err := parseDate(*in.StartDate)
		if err != nil {
			return nil, err
		}
		upd.StartDate = t
	}
	if in.EndDate != nil {
		t, err := parseDate(*in.EndDate)
		if err != nil {
			return nil, err
		}
		upd.EndDate = t
	}
	if in.MaxAttendees != nil {
		if *in.MaxAttendees < 0 {
			return nil, fmt.Errorf("%w: max attendees cannot be negative", domain.ErrInvalidInput)
		}
		upd.MaxAttendees = in.MaxAttendees
	}

	updated, err := s.confRepo.Update(ctx, confID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return updated, nil
}

func (s *conferenceService) Get(ctx context.Context, websafeConferenceKey string) (*domain.ConferenceDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

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
	return &domain.ConferenceDetails{
		Conference:           conf,
		OrganizerDisplayName: s.organizerName(ctx, conf.OrganizerID),
	}, nil
}

func (s *conferenceService) ListCreated(ctx context.Context, userID string) ([]*domain.ConferenceDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileService.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	confs, err := s.confRepo.ListByOrganizerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	details := make([]*domain.ConferenceDetails, 0, len(confs))
	for _, c := range confs {
		details = append(details, &domain.ConferenceDetails{
			Conference:           c,
			OrganizerDisplayName: profile.DisplayName,
		})
	}
	return details, nil
}

func (s *conferenceService) Query(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	compiled, err := query.Compile(filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.confRepo.Query(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return s.withOrganizerNames(ctx, confs)
}

func (s *conferenceService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.confRepo.ListNearlySoldOut(ctx)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out: %w", err)
	}
	if len(confs) == 0 {
		// No close calls left; retire any stale announcement.
		s.cache.Delete(domain.AnnouncementCacheKey)
		return "", nil
	}
	names := make([]string, 0, len(confs))
	for _, c := range confs {
		names = append(names, c.Name)
	}
	announcement := announcementPrefix + strings.Join(names, ", ")
	s.cache.Set(domain.AnnouncementCacheKey, announcement)
	return announcement, nil
}

func (s *conferenceService) Announcement(ctx context.Context) string {
	if v, ok := s.cache.Get(domain.AnnouncementCacheKey); ok {
		return v
	}
	return ""
}

// withOrganizerNames resolves organizer display names in one batch.
func (s *conferenceService) withOrganizerNames(ctx context.Context, confs []*domain.Conference) ([]*domain.ConferenceDetails, error) {
	ids := make([]string, 0, len(confs))
	seen := make(map[string]struct{})
	for _, c := range confs {
		if _, ok := seen[c.OrganizerID]; ok {
			continue
		}
		seen[c.OrganizerID] = struct{}{}
		ids = append(ids, c.OrganizerID)
	}
	profiles, err := s.profileRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list organizer profiles: %w", err)
	}
	details := make([]*domain.ConferenceDetails, 0, len(confs))
	for _, c := range confs {
		name := ""
		if p, ok := profiles[c.OrganizerID]; ok {
			name = p.DisplayName
		}
		details = append(details, &domain.ConferenceDetails{Conference: c, OrganizerDisplayName: name})
	}
	return details, nil
}

func (s *conferenceService) organizerName(ctx context.Context, organizerID string) string {
	p, err := s.profileRepo.GetByID(ctx, organizerID)
	if err != nil {
		return ""
	}
	return p.DisplayName
}

// parseDate parses a YYYY-MM-DD wire date; "" means no date.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// describeConference renders the plain-text summary used in the
// confirmation email.
func describeConference(c *domain.Conference) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "City: %s\n", c.City)
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(c.Topics, ", "))
	if c.StartDate != nil {
		end := ""
		if c.EndDate != nil {
			end = " - " + c.EndDate.Format(dateLayout)
		}
		fmt.Fprintf(&b, "Dates: %s%s\n", c.StartDate.Format(dateLayout), end)
	}
	fmt.Fprintf(&b, "Max attendees: %d", c.MaxAttendees)
	return b.String()
}
