package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Read-only conference, session and announcement routes are public;
// everything that acts on behalf of a user requires a bearer token.
func NewRouter(
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	conferenceController *controllers.ConferenceController,
	registrationController *controllers.RegistrationController,
	sessionController *controllers.SessionController,
	wishlistController *controllers.WishlistController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Profile
	mux.HandleFunc("GET /profile", auth(profileController.GetProfile))
	mux.HandleFunc("POST /profile", auth(profileController.SaveProfile))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(conferenceController.CreateConference))
	mux.HandleFunc("GET /conferences/created", auth(conferenceController.GetConferencesCreated))
	mux.HandleFunc("GET /conferences/attending", auth(registrationController.GetConferencesToAttend))
	mux.HandleFunc("GET /conferences/announcement", conferenceController.GetAnnouncement)
	mux.HandleFunc("POST /conferences/query", conferenceController.QueryConferences)
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}", conferenceController.GetConference)
	mux.HandleFunc("PUT /conferences/{websafeConferenceKey}", auth(conferenceController.UpdateConference))

	// Registration
	mux.HandleFunc("POST /conferences/{websafeConferenceKey}/registration", auth(registrationController.Register))
	mux.HandleFunc("DELETE /conferences/{websafeConferenceKey}/registration", auth(registrationController.Unregister))

	// Sessions
	mux.HandleFunc("POST /conferences/{websafeConferenceKey}/sessions", auth(sessionController.CreateSession))
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}/sessions", sessionController.GetConferenceSessions)
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}/sessions/type/{typeOfSession}", sessionController.GetConferenceSessionsByType)
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}/featured-speaker", sessionController.GetFeaturedSpeaker)
	mux.HandleFunc("GET /sessions/speaker/{speaker}", sessionController.GetSessionsBySpeaker)

	// Wishlist
	mux.HandleFunc("GET /wishlist", auth(wishlistController.GetWishlist))
	mux.HandleFunc("POST /wishlist/sessions", auth(wishlistController.AddSession))
	mux.HandleFunc("DELETE /wishlist/sessions/{websafeSessionKey}", auth(wishlistController.DeleteSession))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
