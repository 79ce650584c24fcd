// Package memory provides a mutex-guarded in-memory implementation of the
// storage interfaces. It backs tests and database-less development runs with
// the same semantics as the Postgres layer: one identifier space, atomic
// counter increments, no separate path for seeded versus created records.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mibcs/clubsite/internal/domain/analytics"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/users"
	"github.com/mibcs/clubsite/internal/storage"
)

type state struct {
	mu sync.RWMutex

	events map[string]*events.Event
	users  map[string]*users.User

	achievements []analytics.RecentAchievement
	projects     []Project
	members      []Member
	contacts     []analytics.RecentContact

	now func() time.Time
}

type Project struct {
	ID        string
	Title     string
	Status    string
	CreatedAt time.Time
}

type Member struct {
	ID       string
	Name     string
	IsActive bool
}

type Repository struct {
	state  *state
	events *EventRepository
	users  *UserRepository
	stats  *StatsRepository
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	s := &state{
		events: make(map[string]*events.Event),
		users:  make(map[string]*users.User),
		now:    time.Now,
	}
	return &Repository{
		state:  s,
		events: &EventRepository{state: s},
		users:  &UserRepository{state: s},
		stats:  &StatsRepository{state: s},
	}
}

func (r *Repository) Events() events.Repository {
	return r.events
}

func (r *Repository) Users() users.Repository {
	return r.users
}

func (r *Repository) Stats() analytics.Repository {
	return r.stats
}

// SetClock overrides the timestamp source, for tests that assert on
// created/updated times.
func (r *Repository) SetClock(now func() time.Time) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.now = now
}

// AddAchievement, AddProject, AddMember, and AddContact feed the dashboard
// aggregates with supporting content.
func (r *Repository) AddAchievement(item analytics.RecentAchievement) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.achievements = append(r.state.achievements, item)
}

func (r *Repository) AddProject(project Project) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.projects = append(r.state.projects, project)
}

func (r *Repository) AddMember(member Member) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.members = append(r.state.members, member)
}

func (r *Repository) AddContact(contact analytics.RecentContact) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.contacts = append(r.state.contacts, contact)
}

type EventRepository struct {
	state *state
}

var _ events.Repository = (*EventRepository)(nil)

func (r *EventRepository) List(ctx context.Context, filters events.Filters, pagination events.Pagination) (events.ListResult, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	matched := make([]*events.Event, 0, len(r.state.events))
	for _, event := range r.state.events {
		if filters.Status != "" && event.Status != filters.Status {
			continue
		}
		if filters.Domain != "" && !containsString(event.Domains, filters.Domain) {
			continue
		}
		if filters.Featured != nil && event.Featured != *filters.Featured {
			continue
		}
		matched = append(matched, event)
	}

	descending := filters.Status == events.StatusCompleted
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.StartTime.Equal(b.StartTime) {
			if descending {
				return a.StartTime.After(b.StartTime)
			}
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})

	total := len(matched)
	limit := pagination.Limit
	if limit <= 0 {
		limit = 10
	}
	start := pagination.Offset()
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]events.Event, 0, end-start)
	for _, event := range matched[start:end] {
		page = append(page, cloneEvent(event))
	}
	return events.ListResult{Events: page, Total: total}, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	event, ok := r.state.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	clone := cloneEvent(event)
	return &clone, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	now := r.state.now()
	event := &events.Event{
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
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	r.state.events[event.ID] = event

	clone := cloneEvent(event)
	return &clone, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	event, ok := r.state.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}

	if params.Title != nil {
		event.Title = *params.Title
	}
	if params.Description != nil {
		event.Description = *params.Description
	}
	if params.ShortDescription != nil {
		event.ShortDescription = *params.ShortDescription
	}
	if params.StartTime != nil {
		event.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		event.EndTime = params.EndTime
	}
	if params.DisplayTime != nil {
		event.DisplayTime = *params.DisplayTime
	}
	if params.Venue != nil {
		event.Venue = *params.Venue
	}
	if params.Type != nil {
		event.Type = *params.Type
	}
	if params.Status != nil {
		event.Status = *params.Status
	}
	if params.RegistrationLink != nil {
		event.RegistrationLink = *params.RegistrationLink
	}
	if params.MaxParticipants != nil {
		event.MaxParticipants = params.MaxParticipants
	}
	if params.CurrentParticipants != nil {
		event.CurrentParticipants = *params.CurrentParticipants
	}
	if params.Tags != nil {
		event.Tags = params.Tags
	}
	if params.Domains != nil {
		event.Domains = params.Domains
	}
	if params.Organizers != nil {
		event.Organizers = params.Organizers
	}
	if params.Images != nil {
		event.Images = params.Images
	}
	if params.Featured != nil {
		event.Featured = *params.Featured
	}
	event.UpdatedAt = r.state.now()

	clone := cloneEvent(event)
	return &clone, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if _, ok := r.state.events[id]; !ok {
		return events.ErrNotFound
	}
	delete(r.state.events, id)
	return nil
}

func (r *EventRepository) IncrementViews(ctx context.Context, id string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	event, ok := r.state.events[id]
	if !ok {
		return events.ErrNotFound
	}
	event.Views++
	return nil
}

func (r *EventRepository) IncrementRegistrationClicks(ctx context.Context, id string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	event, ok := r.state.events[id]
	if !ok {
		return events.ErrNotFound
	}
	event.RegistrationClicks++
	return nil
}

func (r *EventRepository) EngagementTotals(ctx context.Context) (events.EngagementTotals, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	var totals events.EngagementTotals
	for _, event := range r.state.events {
		totals.TotalViews += event.Views
		totals.TotalRegistrationClicks += event.RegistrationClicks
	}
	return totals, nil
}

type UserRepository struct {
	state *state
}

var _ users.Repository = (*UserRepository)(nil)

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	for _, user := range r.state.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	user, ok := r.state.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	user := &users.User{
		ID:           params.ID,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		IsActive:     true,
		CreatedAt:    r.state.now(),
	}
	r.state.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	user, ok := r.state.users[id]
	if !ok {
		return users.ErrNotFound
	}
	now := r.state.now()
	user.LastLoginAt = &now
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	user, ok := r.state.users[id]
	if !ok {
		return users.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func cloneEvent(event *events.Event) events.Event {
	clone := *event
	clone.Tags = append([]string(nil), event.Tags...)
	clone.Domains = append([]string(nil), event.Domains...)
	clone.Organizers = append([]string(nil), event.Organizers...)
	clone.Images = append([]events.Image(nil), event.Images...)
	if event.MaxParticipants != nil {
		value := *event.MaxParticipants
		clone.MaxParticipants = &value
	}
	if event.EndTime != nil {
		value := *event.EndTime
		clone.EndTime = &value
	}
	return clone
}
