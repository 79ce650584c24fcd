package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mibcs/clubsite/internal/api/pagination"
	"github.com/mibcs/clubsite/internal/api/problem"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/ids"
	"github.com/mibcs/clubsite/internal/metrics"
)

type EventsHandler struct {
	Store   *events.Store
	Tracker *events.Tracker
	Env     string
}

func NewEventsHandler(store *events.Store, tracker *events.Tracker, env string) *EventsHandler {
	return &EventsHandler{Store: store, Tracker: tracker, Env: env}
}

// eventPayload is the wire shape of an event. The analytics block is only
// populated on admin responses; public responses must not carry it.
type eventPayload struct {
	ID                  string             `json:"id"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	ShortDescription    string             `json:"shortDescription,omitempty"`
	Date                time.Time          `json:"date"`
	EndDate             *time.Time         `json:"endDate,omitempty"`
	Time                string             `json:"time"`
	Venue               string             `json:"venue"`
	Type                string             `json:"type"`
	Status              string             `json:"status"`
	RegistrationLink    string             `json:"registrationLink,omitempty"`
	MaxParticipants     *int               `json:"maxParticipants"`
	CurrentParticipants int                `json:"currentParticipants"`
	Tags                []string           `json:"tags"`
	Domains             []string           `json:"domains"`
	Organizers          []string           `json:"organizers"`
	Images              []events.Image     `json:"images"`
	Featured            bool               `json:"featured"`
	CanRegister         bool               `json:"canRegister"`
	HasPassed           bool               `json:"hasPassed"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
	Analytics           *analyticsPayload  `json:"analytics,omitempty"`
}

type analyticsPayload struct {
	Views              int64 `json:"views"`
	RegistrationClicks int64 `json:"registrationClicks"`
}

type eventListResponse struct {
	Events     []eventPayload  `json:"events"`
	Pagination pagination.Meta `json:"pagination"`
}

func publicEvent(event *events.Event, now time.Time) eventPayload {
	return eventPayload{
		ID:                  event.ID,
		Title:               event.Title,
		Description:         event.Description,
		ShortDescription:    event.ShortDescription,
		Date:                event.StartTime,
		EndDate:             event.EndTime,
		Time:                event.DisplayTime,
		Venue:               event.Venue,
		Type:                string(event.Type),
		Status:              string(event.Status),
		RegistrationLink:    event.RegistrationLink,
		MaxParticipants:     event.MaxParticipants,
		CurrentParticipants: event.CurrentParticipants,
		Tags:                emptyIfNil(event.Tags),
		Domains:             emptyIfNil(event.Domains),
		Organizers:          emptyIfNil(event.Organizers),
		Images:              emptyImagesIfNil(event.Images),
		Featured:            event.Featured,
		CanRegister:         event.CanRegister(),
		HasPassed:           event.HasPassed(now),
		CreatedAt:           event.CreatedAt,
		UpdatedAt:           event.UpdatedAt,
	}
}

func adminEvent(event *events.Event, now time.Time) eventPayload {
	payload := publicEvent(event, now)
	payload.Analytics = &analyticsPayload{
		Views:              event.Views,
		RegistrationClicks: event.RegistrationClicks,
	}
	return payload
}

// List serves the public event listing. Counters stay hidden.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, publicEvent)
}

// AdminList serves the full-shape listing for the dashboard.
func (h *EventsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, adminEvent)
}

func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request, shape func(*events.Event, time.Time) eventPayload) {
	filters, page, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	result, err := h.Store.List(r.Context(), filters, page)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	now := time.Now()
	items := make([]eventPayload, 0, len(result.Events))
	for i := range result.Events {
		items = append(items, shape(&result.Events[i], now))
	}

	writeJSON(w, http.StatusOK, eventListResponse{
		Events:     items,
		Pagination: pagination.NewMeta(result.Total, page.Page, page.Limit),
	})
}

// Get serves the public event detail and counts the view. The increment is a
// single atomic statement in the store; a missing event 404s before any read.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.Tracker.RecordView(r.Context(), id); err != nil {
		h.writeEventError(w, r, err)
		return
	}
	metrics.EngagementEvents.WithLabelValues("view").Inc()

	event, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.writeEventError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, publicEvent(event, time.Now()))
}

// AdminGet serves the full shape without touching the view counter.
func (h *EventsHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.writeEventError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, adminEvent(event, time.Now()))
}

type registerClickResponse struct {
	CanRegister      bool   `json:"canRegister"`
	RegistrationLink string `json:"registrationLink,omitempty"`
}

// RegisterClick records registration intent. The click counts even when the
// event has no link or is no longer open; the response tells the client
// whether registration is actually available.
func (h *EventsHandler) RegisterClick(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.Tracker.RecordRegistrationClick(r.Context(), id); err != nil {
		h.writeEventError(w, r, err)
		return
	}
	metrics.EngagementEvents.WithLabelValues("registration_click").Inc()

	event, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.writeEventError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, registerClickResponse{
		CanRegister:      event.CanRegister(),
		RegistrationLink: event.RegistrationLink,
	})
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithDetail("malformed JSON body"))
		return
	}

	event, err := h.Store.Create(r.Context(), input)
	if err != nil {
		h.writeEventError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, adminEvent(event, time.Now()))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var input events.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithDetail("malformed JSON body"))
		return
	}

	event, err := h.Store.Update(r.Context(), id, input)
	if err != nil {
		h.writeEventError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, adminEvent(event, time.Now()))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.writeEventError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EventsHandler) eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			events.FilterError{Field: "id", Message: "missing"}, h.Env)
		return "", false
	}
	if err := ids.ValidateULID(id); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			events.FilterError{Field: "id", Message: "invalid ULID"}, h.Env)
		return "", false
	}
	return id, true
}

func (h *EventsHandler) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs events.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithErrors(validationErrs.Fields()))
	case errors.Is(err, events.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyImagesIfNil(values []events.Image) []events.Image {
	if values == nil {
		return []events.Image{}
	}
	return values
}
