package services

import (
	"context"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type mockAccountRepository struct {
	accounts  map[string]*domain.Account // by ID
	byEmail   map[string]*domain.Account
	createErr error
}

func (m *mockAccountRepository) Create(ctx context.Context, a *domain.Account) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = "acc-1"
	return nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

type mockProfileRepository struct {
	profiles map[string]*domain.Profile
	created  []*domain.Profile
	updated  []*domain.Profile
	err      error
}

func (m *mockProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	if m.profiles == nil {
		m.profiles = map[string]*domain.Profile{}
	}
	m.profiles[p.ID] = p
	m.created = append(m.created, p)
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, p)
	return nil
}

func (m *mockProfileRepository) ListByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[string]*domain.Profile{}
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type mockWishlistRepository struct {
	wishlists map[string]*domain.Wishlist // by profile ID
	appended  []string
	removed   []string
	removeErr error
	err       error
}

func (m *mockWishlistRepository) Create(ctx context.Context, wl *domain.Wishlist) error {
	if m.err != nil {
		return m.err
	}
	wl.ID = "wl-" + wl.ProfileID
	if m.wishlists == nil {
		m.wishlists = map[string]*domain.Wishlist{}
	}
	m.wishlists[wl.ProfileID] = wl
	return nil
}

func (m *mockWishlistRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.Wishlist, error) {
	if m.err != nil {
		return nil, m.err
	}
	if wl, ok := m.wishlists[profileID]; ok {
		return wl, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockWishlistRepository) AppendSessionKey(ctx context.Context, wishlistID, sessionKey string) error {
	m.appended = append(m.appended, sessionKey)
	return nil
}

func (m *mockWishlistRepository) RemoveSessionKey(ctx context.Context, wishlistID, sessionKey string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removed = append(m.removed, sessionKey)
	return nil
}

type mockConferenceRepository struct {
	confs         map[string]*domain.Conference
	byOrganizer   map[string][]*domain.Conference
	queryResult   []*domain.Conference
	queryCompiled *query.Compiled
	nearlySoldOut []*domain.Conference
	updateResult  *domain.Conference
	err           error
}

func (m *mockConferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	c.ID = "conf-1"
	return nil
}

func (m *mockConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.confs[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockConferenceRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byOrganizer[organizerID], nil
}

func (m *mockConferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*domain.Conference{}
	for _, id := range ids {
		if c, ok := m.confs[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) Update(ctx context.Context, id string, upd *domain.ConferenceUpdate) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.updateResult != nil {
		return m.updateResult, nil
	}
	if c, ok := m.confs[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockConferenceRepository) Query(ctx context.Context, compiled *query.Compiled) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.queryCompiled = compiled
	return m.queryResult, nil
}

func (m *mockConferenceRepository) ListNearlySoldOut(ctx context.Context) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.nearlySoldOut, nil
}

type mockRegistrationLedger struct {
	registerOK   bool
	registerErr  error
	unregisterOK bool
	listIDs      []string
	err          error
}

func (m *mockRegistrationLedger) Register(ctx context.Context, conferenceID, profileID string) (bool, error) {
	if m.registerErr != nil {
		return false, m.registerErr
	}
	return m.registerOK, nil
}

func (m *mockRegistrationLedger) Unregister(ctx context.Context, conferenceID, profileID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.unregisterOK, nil
}

func (m *mockRegistrationLedger) ListConferenceIDs(ctx context.Context, profileID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listIDs, nil
}

type mockSessionRepository struct {
	sessions     map[string]*domain.Session
	byConference map[string][]*domain.Session
	bySpeaker    map[string][]*domain.Session
	err          error
}

func (m *mockSessionRepository) Create(ctx context.Context, sess *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	sess.ID = "sess-1"
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockSessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byConference[conferenceID], nil
}

func (m *mockSessionRepository) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, s := range m.byConference[conferenceID] {
		if s.TypeOfSession == typeOfSession {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bySpeaker[speaker], nil
}

func (m *mockSessionRepository) ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, s := range m.byConference[conferenceID] {
		if s.Speaker == speaker {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockTaskQueue struct {
	emails        []domain.ConfirmationEmailTask
	speakerChecks []domain.SpeakerCheckTask
}

func (m *mockTaskQueue) EnqueueConfirmationEmail(task domain.ConfirmationEmailTask) {
	m.emails = append(m.emails, task)
}

func (m *mockTaskQueue) EnqueueSpeakerCheck(task domain.SpeakerCheckTask) {
	m.speakerChecks = append(m.speakerChecks, task)
}

type mockCache struct {
	data map[string]string
}

func newMockCache() *mockCache { return &mockCache{data: map[string]string{}} }

func (m *mockCache) Get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Set(key, value string) { m.data[key] = value }

func (m *mockCache) Delete(key string) { delete(m.data, key) }

type mockProfileService struct {
	profile *domain.Profile
	err     error
}

func (m *mockProfileService) GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockProfileService) Save(ctx context.Context, userID, displayName, teeShirtSize string) (*domain.Profile, error) {
	return m.profile, m.err
}

type mockHasher struct {
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockHasher) Hash(salt, password string) (string, error) { return "hash:" + password, nil }

func (m *mockHasher) Compare(hash, salt, password string) error { return m.compareErr }

type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	return m.token, m.err
}

type mockMailer struct {
	sent []string // recipient addresses
	err  error
}

func (m *mockMailer) Send(to, subject, htmlBody, textBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockTemplateRenderer struct {
	err error
}

func (m *mockTemplateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if m.err != nil {
		return "", "", "", m.err
	}
	return "subject", "<p>html</p>", "text", nil
}
