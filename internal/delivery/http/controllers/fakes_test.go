package controllers

import (
	"context"
	"io"
	"log/slog"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpResult *domain.Account
	signUpErr    error
	loginToken   string
	loginErr     error
	lastEmail    string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password string) (*domain.Account, error) {
	f.lastEmail = email
	return f.signUpResult, f.signUpErr
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail = email
	return f.loginToken, f.loginErr
}

// fakeProfileService implements domain.ProfileService.
type fakeProfileService struct {
	profile    *domain.Profile
	err        error
	lastUserID string
	lastName   string
	lastSize   string
}

func (f *fakeProfileService) GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	f.lastUserID = userID
	return f.profile, f.err
}

func (f *fakeProfileService) Save(ctx context.Context, userID, displayName, teeShirtSize string) (*domain.Profile, error) {
	f.lastUserID = userID
	f.lastName = displayName
	f.lastSize = teeShirtSize
	return f.profile, f.err
}

// fakeConferenceService implements domain.ConferenceService.
type fakeConferenceService struct {
	createResult *domain.Conference
	createErr    error
	updateResult *domain.Conference
	updateErr    error
	getResult    *domain.ConferenceDetails
	getErr       error
	listCreated  []*domain.ConferenceDetails
	listErr      error
	queryResult  []*domain.ConferenceDetails
	queryErr     error
	announcement string

	lastUserID  string
	lastKey     string
	lastInput   *domain.ConferenceInput
	lastUpdate  *domain.ConferenceUpdateInput
	lastFilters []query.Filter
}

func (f *fakeConferenceService) Create(ctx context.Context, userID string, in *domain.ConferenceInput) (*domain.Conference, error) {
	f.lastUserID = userID
	f.lastInput = in
	return f.createResult, f.createErr
}

func (f *fakeConferenceService) Update(ctx context.Context, userID, websafeConferenceKey string, in *domain.ConferenceUpdateInput) (*domain.Conference, error) {
	f.lastUserID = userID
	f.lastKey = websafeConferenceKey
	f.lastUpdate = in
	return f.updateResult, f.updateErr
}

func (f *fakeConferenceService) Get(ctx context.Context, websafeConferenceKey string) (*domain.ConferenceDetails, error) {
	f.lastKey = websafeConferenceKey
	return f.getResult, f.getErr
}

func (f *fakeConferenceService) ListCreated(ctx context.Context, userID string) ([]*domain.ConferenceDetails, error) {
	f.lastUserID = userID
	return f.listCreated, f.listErr
}

func (f *fakeConferenceService) Query(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceDetails, error) {
	f.lastFilters = filters
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryResult, nil
}

func (f *fakeConferenceService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	return f.announcement, nil
}

func (f *fakeConferenceService) Announcement(ctx context.Context) string {
	return f.announcement
}

// fakeRegistrationService implements domain.RegistrationService.
type fakeRegistrationService struct {
	registerOK    bool
	registerErr   error
	unregisterOK  bool
	unregisterErr error
	attending     []*domain.ConferenceDetails
	attendingErr  error
	lastUserID    string
	lastKey       string
}

func (f *fakeRegistrationService) Register(ctx context.Context, userID, websafeConferenceKey string) (bool, error) {
	f.lastUserID = userID
	f.lastKey = websafeConferenceKey
	return f.registerOK, f.registerErr
}

func (f *fakeRegistrationService) Unregister(ctx context.Context, userID, websafeConferenceKey string) (bool, error) {
	f.lastUserID = userID
	f.lastKey = websafeConferenceKey
	return f.unregisterOK, f.unregisterErr
}

func (f *fakeRegistrationService) ListConferencesToAttend(ctx context.Context, userID string) ([]*domain.ConferenceDetails, error) {
	f.lastUserID = userID
	return f.attending, f.attendingErr
}

// fakeSessionService implements domain.SessionService.
type fakeSessionService struct {
	createResult    *domain.Session
	createErr       error
	listResult      []*domain.Session
	listErr         error
	featuredSpeaker string
	lastUserID      string
	lastKey         string
	lastType        string
	lastSpeaker     string
	lastInput       *domain.SessionInput
}

func (f *fakeSessionService) Create(ctx context.Context, userID, websafeConferenceKey string, in *domain.SessionInput) (*domain.Session, error) {
	f.lastUserID = userID
	f.lastKey = websafeConferenceKey
	f.lastInput = in
	return f.createResult, f.createErr
}

func (f *fakeSessionService) ListByConference(ctx context.Context, websafeConferenceKey string) ([]*domain.Session, error) {
	f.lastKey = websafeConferenceKey
	return f.listResult, f.listErr
}

func (f *fakeSessionService) ListByConferenceAndType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*domain.Session, error) {
	f.lastKey = websafeConferenceKey
	f.lastType = typeOfSession
	return f.listResult, f.listErr
}

func (f *fakeSessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	f.lastSpeaker = speaker
	return f.listResult, f.listErr
}

func (f *fakeSessionService) ScanFeaturedSpeaker(ctx context.Context, speaker, conferenceID, websafeConferenceKey string) error {
	return nil
}

func (f *fakeSessionService) FeaturedSpeaker(ctx context.Context, websafeConferenceKey string) string {
	f.lastKey = websafeConferenceKey
	return f.featuredSpeaker
}

// fakeWishlistService implements domain.WishlistService.
type fakeWishlistService struct {
	wishlist   *domain.Wishlist
	err        error
	lastUserID string
	lastKey    string
}

func (f *fakeWishlistService) AddSession(ctx context.Context, userID, websafeSessionKey string) (*domain.Wishlist, error) {
	f.lastUserID = userID
	f.lastKey = websafeSessionKey
	return f.wishlist, f.err
}

func (f *fakeWishlistService) DeleteSession(ctx context.Context, userID, websafeSessionKey string) (*domain.Wishlist, error) {
	f.lastUserID = userID
	f.lastKey = websafeSessionKey
	return f.wishlist, f.err
}

func (f *fakeWishlistService) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	f.lastUserID = userID
	return f.wishlist, f.err
}
