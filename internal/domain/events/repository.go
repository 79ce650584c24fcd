package events

import (
	"context"
	"time"
)

type Filters struct {
	Status   Status
	Domain   string
	Featured *bool
}

// Pagination is offset-based: page starts at 1.
type Pagination struct {
	Limit int
	Page  int
}

func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type ListResult struct {
	Events []Event
	Total  int
}

type CreateParams struct {
	ID                  string
	Title               string
	Description         string
	ShortDescription    string
	StartTime           time.Time
	EndTime             *time.Time
	DisplayTime         string
	Venue               string
	Type                EventType
	Status              Status
	RegistrationLink    string
	MaxParticipants     *int
	CurrentParticipants int
	Tags                []string
	Domains             []string
	Organizers          []string
	Images              []Image
	Featured            bool
}

// UpdateParams carries only the fields the caller wants to change; nil means
// "leave as is". Counters are deliberately absent: they move only through the
// increment operations.
type UpdateParams struct {
	Title               *string
	Description         *string
	ShortDescription    *string
	StartTime           *time.Time
	EndTime             *time.Time
	DisplayTime         *string
	Venue               *string
	Type                *EventType
	Status              *Status
	RegistrationLink    *string
	MaxParticipants     *int
	CurrentParticipants *int
	Tags                []string
	Domains             []string
	Organizers          []string
	Images              []Image
	Featured            *bool
}

type EngagementTotals struct {
	TotalViews              int64
	TotalRegistrationClicks int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, params CreateParams) (*Event, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Event, error)
	Delete(ctx context.Context, id string) error

	// IncrementViews and IncrementRegistrationClicks must be atomic against
	// the backing store. Fetch-then-write-back loses updates under
	// concurrency and is not an acceptable implementation.
	IncrementViews(ctx context.Context, id string) error
	IncrementRegistrationClicks(ctx context.Context, id string) error
	EngagementTotals(ctx context.Context) (EngagementTotals, error)
}
