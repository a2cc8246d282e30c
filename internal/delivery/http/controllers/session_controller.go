package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

// CreateSessionRequest is the request body for POST /conferences/{websafeConferenceKey}/sessions.
// Date uses YYYY-MM-DD and start_time HH:MM (24h).
type CreateSessionRequest struct {
	Name            string `json:"name"`
	Speaker         string `json:"speaker"`
	Highlights      string `json:"highlights"`
	TypeOfSession   string `json:"type_of_session"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Validate implements Validator.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.DurationMinutes < 0 {
		errs = append(errs, "duration_minutes cannot be negative")
	}
	return errs
}

// SessionResponse is a session plus its websafe key.
type SessionResponse struct {
	*domain.Session
	WebsafeSessionKey string `json:"websafe_session_key"`
}

// FeaturedSpeakerResponse is the data payload for the featured-speaker route.
type FeaturedSpeakerResponse struct {
	FeaturedSpeaker string `json:"featured_speaker"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		Session:           s,
		WebsafeSessionKey: keys.ForSession(s.ConferenceID, s.ID).Encode(),
	}
}

func toSessionResponses(sessions []*domain.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Adds a session to the conference. Only the conference organizer may add sessions. When the session names a speaker, the featured-speaker check runs in the background.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	wsKey := r.PathValue("websafeConferenceKey")
	if wsKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sess, err := c.Service.Create(r.Context(), userID, wsKey, &domain.SessionInput{
		Name:            req.Name,
		Speaker:         req.Speaker,
		Highlights:      req.Highlights,
		TypeOfSession:   req.TypeOfSession,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can add sessions")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toSessionResponse(sess))
}

// GetConferenceSessions godoc
// @Summary List a conference's sessions
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/sessions [get]
func (c *SessionController) GetConferenceSessions(w http.ResponseWriter, r *http.Request) {
	wsKey := r.PathValue("websafeConferenceKey")
	if wsKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	sessions, err := c.Service.ListByConference(r.Context(), wsKey)
	if err != nil {
		c.writeListError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionResponses(sessions))
}

// GetConferenceSessionsByType godoc
// @Summary List a conference's sessions of one type
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Param typeOfSession path string true "Session type (e.g. lecture, workshop, keynote)"
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/sessions/type/{typeOfSession} [get]
func (c *SessionController) GetConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	wsKey := r.PathValue("websafeConferenceKey")
	typeOfSession := r.PathValue("typeOfSession")
	if wsKey == "" || typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey or typeOfSession")
		return
	}
	sessions, err := c.Service.ListByConferenceAndType(r.Context(), wsKey, typeOfSession)
	if err != nil {
		c.writeListError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionResponses(sessions))
}

// GetSessionsBySpeaker godoc
// @Summary List sessions by speaker across all conferences
// @Tags sessions
// @Produce json
// @Param speaker path string true "Speaker name"
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/speaker/{speaker} [get]
func (c *SessionController) GetSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := r.PathValue("speaker")
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}
	sessions, err := c.Service.ListBySpeaker(r.Context(), speaker)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionResponses(sessions))
}

// GetFeaturedSpeaker godoc
// @Summary Get the conference's featured speaker
// @Description Returns the cached featured-speaker summary, or an empty string when no speaker has been featured.
// @Tags sessions
// @Produce json
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} helpers.APIResponse "data contains the featured speaker text"
// @Router /conferences/{websafeConferenceKey}/featured-speaker [get]
func (c *SessionController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	wsKey := r.PathValue("websafeConferenceKey")
	if wsKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FeaturedSpeakerResponse{
		FeaturedSpeaker: c.Service.FeaturedSpeaker(r.Context(), wsKey),
	})
}

func (c *SessionController) writeListError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
