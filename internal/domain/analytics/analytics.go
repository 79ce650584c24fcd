package analytics

import (
	"context"
	"time"

	"github.com/mibcs/clubsite/internal/domain/events"
)

const recentLimit = 5

// Repository answers the read-only aggregate queries the admin dashboard
// needs. It never mutates anything.
type Repository interface {
	EventCounts(ctx context.Context) (total int, upcoming int, err error)
	AchievementCount(ctx context.Context) (int, error)
	ProjectCounts(ctx context.Context) (total int, active int, err error)
	ActiveMemberCount(ctx context.Context) (int, error)
	PendingContactCount(ctx context.Context) (int, error)
	RecentEvents(ctx context.Context, limit int) ([]RecentEvent, error)
	RecentAchievements(ctx context.Context, limit int) ([]RecentAchievement, error)
	RecentContacts(ctx context.Context, limit int) ([]RecentContact, error)
	MonthlyViews(ctx context.Context, months int) ([]MonthlyViews, error)
	TopEventsByViews(ctx context.Context, limit int) ([]EventEngagement, error)
	StatusDistribution(ctx context.Context) ([]StatusCount, error)
}

type RecentEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentAchievement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentContact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// MonthlyViews is one chart bucket: engagement of events created in that month.
type MonthlyViews struct {
	Year   int   `json:"year"`
	Month  int   `json:"month"`
	Views  int64 `json:"views"`
	Events int   `json:"events"`
}

type EventEngagement struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	StartTime          time.Time `json:"date"`
	Status             string    `json:"status"`
	RegistrationLink   string    `json:"registrationLink,omitempty"`
	Views              int64     `json:"views"`
	RegistrationClicks int64     `json:"registrationClicks"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Summary struct {
	TotalEvents             int   `json:"totalEvents"`
	UpcomingEvents          int   `json:"upcomingEvents"`
	TotalAchievements       int   `json:"totalAchievements"`
	TotalProjects           int   `json:"totalProjects"`
	ActiveProjects          int   `json:"activeProjects"`
	TotalMembers            int   `json:"totalMembers"`
	PendingContacts         int   `json:"pendingContacts"`
	TotalViews              int64 `json:"totalViews"`
	TotalRegistrationClicks int64 `json:"totalRegistrationClicks"`
}

type RecentActivities struct {
	Events       []RecentEvent       `json:"events"`
	Achievements []RecentAchievement `json:"achievements"`
	Contacts     []RecentContact     `json:"contacts"`
}

type Charts struct {
	MonthlyViews []MonthlyViews `json:"monthlyViews"`
}

type Dashboard struct {
	Summary          Summary          `json:"summary"`
	RecentActivities RecentActivities `json:"recentActivities"`
	Charts           Charts           `json:"charts"`
}

type EventReport struct {
	TopEvents          []EventEngagement `json:"topEvents"`
	StatusDistribution []StatusCount     `json:"statusDistribution"`
	TotalEvents        int               `json:"totalEvents"`
}

// Service assembles the admin dashboard rollups. Engagement totals come from
// the tracker so the all-time sum stays the single baseline metric.
type Service struct {
	repo    Repository
	tracker *events.Tracker
}

func NewService(repo Repository, tracker *events.Tracker) *Service {
	return &Service{repo: repo, tracker: tracker}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	totalEvents, upcomingEvents, err := s.repo.EventCounts(ctx)
	if err != nil {
		return nil, err
	}
	totalAchievements, err := s.repo.AchievementCount(ctx)
	if err != nil {
		return nil, err
	}
	totalProjects, activeProjects, err := s.repo.ProjectCounts(ctx)
	if err != nil {
		return nil, err
	}
	totalMembers, err := s.repo.ActiveMemberCount(ctx)
	if err != nil {
		return nil, err
	}
	pendingContacts, err := s.repo.PendingContactCount(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.tracker.Summarize(ctx)
	if err != nil {
		return nil, err
	}

	recentEvents, err := s.repo.RecentEvents(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	recentAchievements, err := s.repo.RecentAchievements(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	recentContacts, err := s.repo.RecentContacts(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.MonthlyViews(ctx, 12)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Summary: Summary{
			TotalEvents:             totalEvents,
			UpcomingEvents:          upcomingEvents,
			TotalAchievements:       totalAchievements,
			TotalProjects:           totalProjects,
			ActiveProjects:          activeProjects,
			TotalMembers:            totalMembers,
			PendingContacts:         pendingContacts,
			TotalViews:              totals.TotalViews,
			TotalRegistrationClicks: totals.TotalRegistrationClicks,
		},
		RecentActivities: RecentActivities{
			Events:       recentEvents,
			Achievements: recentAchievements,
			Contacts:     recentContacts,
		},
		Charts: Charts{MonthlyViews: monthly},
	}, nil
}

func (s *Service) EventReport(ctx context.Context) (*EventReport, error) {
	top, err := s.repo.TopEventsByViews(ctx, 10)
	if err != nil {
		return nil, err
	}
	distribution, err := s.repo.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	totalEvents, _, err := s.repo.EventCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &EventReport{
		TopEvents:          top,
		StatusDistribution: distribution,
		TotalEvents:        totalEvents,
	}, nil
}
