package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
	"conferencecentral/internal/query"
)

// CreateConferenceRequest is the request body for POST /conferences.
// Dates use the YYYY-MM-DD format. Omitted city and topics get defaults.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	Topics       []string `json:"topics"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees cannot be negative")
	}
	return errs
}

// UpdateConferenceRequest is the request body for PUT /conferences/{websafeConferenceKey}.
// All fields optional; omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	City         *string  `json:"city"`
	Topics       []string `json:"topics"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	MaxAttendees *int     `json:"max_attendees"`
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []query.Filter `json:"filters"`
}

// ConferenceResponse is a conference plus its websafe key, the handle
// clients use on all keyed routes.
type ConferenceResponse struct {
	*domain.Conference
	WebsafeConferenceKey string `json:"websafe_conference_key"`
	OrganizerDisplayName string `json:"organizer_display_name,omitempty"`
}

// AnnouncementResponse is the data payload for GET /conferences/announcement.
type AnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

func toConferenceResponse(c *domain.Conference, organizerDisplayName string) ConferenceResponse {
	return ConferenceResponse{
		Conference:           c,
		WebsafeConferenceKey: keys.ForConference(c.OrganizerID, c.ID).Encode(),
		OrganizerDisplayName: organizerDisplayName,
	}
}

func toConferenceResponses(details []*domain.ConferenceDetails) []ConferenceResponse {
	out := make([]ConferenceResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toConferenceResponse(d.Conference, d.OrganizerDisplayName))
	}
	return out
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference owned by the authenticated user. Missing city and topics receive defaults; seats available starts at max_attendees. A confirmation email is sent in the background.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body CreateConferenceRequest true "Conference data"
// @Success 201 {object} helpers.APIResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := c.Service.Create(r.Context(), userID, &domain.ConferenceInput{
		Name:         req.Name,
		Description:  req.Description,
		City:         req.City,
		Topics:       req.Topics,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toConferenceResponse(conf, ""))
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Applies the provided fields to the conference. Only the organizer may update; omitted fields are unchanged and month is re-derived when start_date changes.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Param conference body UpdateConferenceRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	wsKey := r.PathValue("websafeConferenceKey")
	if wsKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := c.Service.Update(r.Context(), userID, wsKey, &domain.ConferenceUpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		City:         req.City,
		Topics:       req.Topics,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can update this conference")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceResponse(conf, ""))
}

// GetConference godoc
// @Summary Get a conference
// @Description Returns the conference for the given websafe key together with the organizer's display name.
// @Tags conferences
// @Produce json
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} helpers.APIResponse "data contains the conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	wsKey := r.PathValue("websafeConferenceKey")
	if wsKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	details, err := c.Service.Get(r.Context(), wsKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceResponse(details.Conference, details.OrganizerDisplayName))
}

// GetConferencesCreated godoc
// @Summary List conferences the caller organizes
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) GetConferencesCreated(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	details, err := c.Service.ListCreated(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceResponses(details))
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Runs the dynamic conference query. Filters use logical field and operator names (CITY, TOPIC, MONTH, MAX_ATTENDEES; EQ, GT, GTEQ, LT, LTEQ, NE); inequality operators may target only one field.
// @Tags conferences
// @Accept json
// @Produce json
// @Param query body QueryConferencesRequest true "Filter specification"
// @Success 200 {object} helpers.APIResponse "data contains the matching conferences"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details, err := c.Service.Query(r.Context(), req.Filters)
	if err != nil {
		if errors.Is(err, query.ErrInvalidFilter) || errors.Is(err, query.ErrInequalityConflict) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceResponses(details))
}

// GetAnnouncement godoc
// @Summary Get the current announcement
// @Description Returns the cached nearly-sold-out announcement, or an empty string when there is none.
// @Tags conferences
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the announcement text"
// @Router /conferences/announcement [get]
func (c *ConferenceController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{
		Announcement: c.Service.Announcement(r.Context()),
	})
}
