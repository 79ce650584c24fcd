package events

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRepo is a minimal map-backed Repository for exercising the store.
type fakeRepo struct {
	mu     sync.Mutex
	events map[string]*Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: make(map[string]*Event)}
}

func (r *fakeRepo) List(_ context.Context, filters Filters, pagination Pagination) (ListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]Event, 0, len(r.events))
	for _, event := range r.events {
		if filters.Status != "" && event.Status != filters.Status {
			continue
		}
		matched = append(matched, *event)
	}
	return ListResult{Events: matched, Total: len(matched)}, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeRepo) Create(_ context.Context, params CreateParams) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event := &Event{
		ID:                  params.ID,
		Title:               params.Title,
		Description:         params.Description,
		ShortDescription:    params.ShortDescription,
		StartTime:           params.StartTime,
		EndTime:             params.EndTime,
		DisplayTime:         params.DisplayTime,
		Venue:               params.Venue,
		Type:                params.Type,
		Status:              params.Status,
		RegistrationLink:    params.RegistrationLink,
		MaxParticipants:     params.MaxParticipants,
		CurrentParticipants: params.CurrentParticipants,
		Tags:                params.Tags,
		Domains:             params.Domains,
		Organizers:          params.Organizers,
		Images:              params.Images,
		Featured:            params.Featured,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	r.events[event.ID] = event
	clone := *event
	return &clone, nil
}

func (r *fakeRepo) Update(_ context.Context, id string, params UpdateParams) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if params.Title != nil {
		event.Title = *params.Title
	}
	if params.Status != nil {
		event.Status = *params.Status
	}
	if params.StartTime != nil {
		event.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		event.EndTime = params.EndTime
	}
	if params.MaxParticipants != nil {
		event.MaxParticipants = params.MaxParticipants
	}
	if params.CurrentParticipants != nil {
		event.CurrentParticipants = *params.CurrentParticipants
	}
	clone := *event
	return &clone, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return ErrNotFound
	}
	event.Views++
	return nil
}

func (r *fakeRepo) IncrementRegistrationClicks(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return ErrNotFound
	}
	event.RegistrationClicks++
	return nil
}

func (r *fakeRepo) EngagementTotals(_ context.Context) (EngagementTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var totals EngagementTotals
	for _, event := range r.events {
		totals.TotalViews += event.Views
		totals.TotalRegistrationClicks += event.RegistrationClicks
	}
	return totals, nil
}

func validInput() EventInput {
	return EventInput{
		Title:       "Intro to ML",
		Description: "Fundamentals of machine learning.",
		Date:        "2026-02-15",
		Time:        "14:00",
		Venue:       "Lab 1",
	}
}

func TestStoreCreateDefaults(t *testing.T) {
	store := NewStore(newFakeRepo())

	event, err := store.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NotEmpty(t, event.ID)
	require.Equal(t, TypeWorkshop, event.Type)
	require.Equal(t, StatusUpcoming, event.Status)
	require.Zero(t, event.Views)
	require.Zero(t, event.RegistrationClicks)
	require.Zero(t, event.CurrentParticipants)
}

func TestStoreCreateCollectsEveryFailingField(t *testing.T) {
	store := NewStore(newFakeRepo())

	input := EventInput{
		Type:    "concert",
		Status:  "paused",
		Domains: []string{"Quantum"},
	}
	_, err := store.Create(context.Background(), input)
	require.Error(t, err)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	fields := validationErrs.Fields()
	for _, field := range []string{"title", "description", "date", "time", "venue", "type", "status", "domains[0]"} {
		require.Contains(t, fields, field, "missing failure for %s", field)
	}
}

func TestStoreCreateRejectsBadDates(t *testing.T) {
	store := NewStore(newFakeRepo())

	input := validInput()
	input.Date = "February 15th"
	_, err := store.Create(context.Background(), input)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Contains(t, validationErrs.Fields(), "date")
}

func TestStoreCreateRejectsEndDateBeforeDate(t *testing.T) {
	store := NewStore(newFakeRepo())

	input := validInput()
	input.Date = "2026-03-01"
	input.EndDate = "2026-02-28"
	_, err := store.Create(context.Background(), input)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Contains(t, validationErrs.Fields(), "endDate")
}

func TestStoreCreateIgnoresCallerCounters(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)

	event, err := store.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Zero(t, event.CurrentParticipants)
}

func TestStoreUpdateNotFound(t *testing.T) {
	store := NewStore(newFakeRepo())

	title := "renamed"
	_, err := store.Update(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV", UpdateInput{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdateCapacityAgainstMergedRecord(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)

	event, err := store.Create(context.Background(), validInput())
	require.NoError(t, err)

	thirty := 30
	_, err = store.Update(context.Background(), event.ID, UpdateInput{CurrentParticipants: &thirty})
	require.NoError(t, err)

	// Shrinking capacity below the current participant count must fail.
	twenty := 20
	_, err = store.Update(context.Background(), event.ID, UpdateInput{MaxParticipants: &twenty})

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Contains(t, validationErrs.Fields(), "currentParticipants")
}

func TestStoreUpdateDoesNotAutoDeriveStatus(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)

	input := validInput()
	input.Date = "2020-01-01"
	event, err := store.Create(context.Background(), input)
	require.NoError(t, err)

	title := "still upcoming"
	updated, err := store.Update(context.Background(), event.ID, UpdateInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, StatusUpcoming, updated.Status)
	require.True(t, updated.HasPassed(time.Now()))
}

func TestStoreDeleteNotFound(t *testing.T) {
	store := NewStore(newFakeRepo())
	err := store.Delete(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestParseFilters(t *testing.T) {
	filters, pagination, err := ParseFilters(url.Values{
		"status":   {"Completed"},
		"domain":   {"ml"},
		"featured": {"true"},
		"limit":    {"25"},
		"page":     {"3"},
	})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, filters.Status)
	require.Equal(t, DomainML, filters.Domain)
	require.NotNil(t, filters.Featured)
	require.True(t, *filters.Featured)
	require.Equal(t, 25, pagination.Limit)
	require.Equal(t, 3, pagination.Page)
	require.Equal(t, 50, pagination.Offset())
}

func TestParseFiltersDefaults(t *testing.T) {
	filters, pagination, err := ParseFilters(url.Values{})
	require.NoError(t, err)
	require.Empty(t, filters.Status)
	require.Equal(t, 10, pagination.Limit)
	require.Equal(t, 1, pagination.Page)
}

func TestParseFiltersRejectsBadValues(t *testing.T) {
	cases := map[string]url.Values{
		"status":   {"status": {"paused"}},
		"domain":   {"domain": {"Quantum"}},
		"featured": {"featured": {"maybe"}},
		"limit":    {"limit": {"500"}},
		"page":     {"page": {"0"}},
	}
	for field, values := range cases {
		_, _, err := ParseFilters(values)
		var filterErr FilterError
		require.ErrorAs(t, err, &filterErr, "field %s", field)
		require.Equal(t, field, filterErr.Field)
	}
}

func TestCanRegister(t *testing.T) {
	event := Event{Status: StatusUpcoming, RegistrationLink: "https://example.com/form"}
	require.True(t, event.CanRegister())

	event.Status = StatusCompleted
	require.False(t, event.CanRegister())

	event.Status = StatusUpcoming
	event.RegistrationLink = ""
	require.False(t, event.CanRegister())
}
