package events

import "time"

type EventType string

const (
	TypeWorkshop    EventType = "workshop"
	TypeSeminar     EventType = "seminar"
	TypeHackathon   EventType = "hackathon"
	TypeCompetition EventType = "competition"
	TypeMeetup      EventType = "meetup"
	TypeOther       EventType = "other"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Domain tags are the club's technical focus areas.
const (
	DomainML            = "ML"
	DomainIoT           = "IoT"
	DomainBlockchain    = "Blockchain"
	DomainCybersecurity = "Cybersecurity"
	DomainGeneral       = "General"
)

// Event is one scheduled or past club activity. Engagement counters are
// embedded: they have no identity of their own and die with the event.
type Event struct {
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
	Views               int64
	RegistrationClicks  int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// CanRegister reports whether the registration action should be exposed:
// the event is still upcoming and a registration link exists. Callers must
// not duplicate this check ad hoc.
func (e *Event) CanRegister() bool {
	return e.Status == StatusUpcoming && e.RegistrationLink != ""
}

// HasPassed reports whether an event still marked upcoming is already past
// its start time. Display-only: stored status is caller-owned truth and is
// never rewritten as a side effect of reads.
func (e *Event) HasPassed(now time.Time) bool {
	return e.Status == StatusUpcoming && e.StartTime.Before(now)
}

func IsAllowedType(value string) bool {
	switch EventType(value) {
	case TypeWorkshop, TypeSeminar, TypeHackathon, TypeCompetition, TypeMeetup, TypeOther:
		return true
	default:
		return false
	}
}

func IsAllowedStatus(value string) bool {
	switch Status(value) {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func IsAllowedDomain(value string) bool {
	switch value {
	case DomainML, DomainIoT, DomainBlockchain, DomainCybersecurity, DomainGeneral:
		return true
	default:
		return false
	}
}

// AllowedDomains lists the canonical domain tags in display order.
func AllowedDomains() []string {
	return []string{DomainML, DomainIoT, DomainBlockchain, DomainCybersecurity, DomainGeneral}
}
