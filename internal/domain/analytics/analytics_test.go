package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mibcs/clubsite/internal/domain/events"
)

// fixedTotalsRepo is a minimal events.Repository that only answers the
// tracker's rollup query.
type fixedTotalsRepo struct {
	totals events.EngagementTotals
}

func (r *fixedTotalsRepo) List(context.Context, events.Filters, events.Pagination) (events.ListResult, error) {
	return events.ListResult{}, nil
}

func (r *fixedTotalsRepo) GetByID(context.Context, string) (*events.Event, error) {
	return nil, events.ErrNotFound
}

func (r *fixedTotalsRepo) Create(context.Context, events.CreateParams) (*events.Event, error) {
	return nil, errors.New("not implemented")
}

func (r *fixedTotalsRepo) Update(context.Context, string, events.UpdateParams) (*events.Event, error) {
	return nil, errors.New("not implemented")
}

func (r *fixedTotalsRepo) Delete(context.Context, string) error { return events.ErrNotFound }

func (r *fixedTotalsRepo) IncrementViews(context.Context, string) error { return nil }

func (r *fixedTotalsRepo) IncrementRegistrationClicks(context.Context, string) error { return nil }

func (r *fixedTotalsRepo) EngagementTotals(context.Context) (events.EngagementTotals, error) {
	return r.totals, nil
}

type stubStatsRepo struct {
	totalEvents     int
	upcomingEvents  int
	achievements    int
	totalProjects   int
	activeProjects  int
	members         int
	pendingContacts int
	recentEvents    []RecentEvent
	monthly         []MonthlyViews
	topEvents       []EventEngagement
	statuses        []StatusCount
	err             error
}

func (r *stubStatsRepo) EventCounts(context.Context) (int, int, error) {
	return r.totalEvents, r.upcomingEvents, r.err
}

func (r *stubStatsRepo) AchievementCount(context.Context) (int, error) {
	return r.achievements, r.err
}

func (r *stubStatsRepo) ProjectCounts(context.Context) (int, int, error) {
	return r.totalProjects, r.activeProjects, r.err
}

func (r *stubStatsRepo) ActiveMemberCount(context.Context) (int, error) {
	return r.members, r.err
}

func (r *stubStatsRepo) PendingContactCount(context.Context) (int, error) {
	return r.pendingContacts, r.err
}

func (r *stubStatsRepo) RecentEvents(context.Context, int) ([]RecentEvent, error) {
	return r.recentEvents, r.err
}

func (r *stubStatsRepo) RecentAchievements(context.Context, int) ([]RecentAchievement, error) {
	return nil, r.err
}

func (r *stubStatsRepo) RecentContacts(context.Context, int) ([]RecentContact, error) {
	return nil, r.err
}

func (r *stubStatsRepo) MonthlyViews(context.Context, int) ([]MonthlyViews, error) {
	return r.monthly, r.err
}

func (r *stubStatsRepo) TopEventsByViews(context.Context, int) ([]EventEngagement, error) {
	return r.topEvents, r.err
}

func (r *stubStatsRepo) StatusDistribution(context.Context) ([]StatusCount, error) {
	return r.statuses, r.err
}

func TestDashboardAssemblesSummaryFromRepoAndTracker(t *testing.T) {
	tracker := events.NewTracker(&fixedTotalsRepo{
		totals: events.EngagementTotals{TotalViews: 120, TotalRegistrationClicks: 34},
	})
	repo := &stubStatsRepo{
		totalEvents:     8,
		upcomingEvents:  3,
		achievements:    5,
		totalProjects:   4,
		activeProjects:  2,
		members:         17,
		pendingContacts: 1,
		recentEvents: []RecentEvent{
			{ID: "evt-1", Title: "Intro to ML", Status: "completed", CreatedAt: time.Now()},
		},
		monthly: []MonthlyViews{{Year: 2026, Month: 8, Views: 40, Events: 2}},
	}
	service := NewService(repo, tracker)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	require.Equal(t, 8, dashboard.Summary.TotalEvents)
	require.Equal(t, 3, dashboard.Summary.UpcomingEvents)
	require.Equal(t, 5, dashboard.Summary.TotalAchievements)
	require.Equal(t, 4, dashboard.Summary.TotalProjects)
	require.Equal(t, 2, dashboard.Summary.ActiveProjects)
	require.Equal(t, 17, dashboard.Summary.TotalMembers)
	require.Equal(t, 1, dashboard.Summary.PendingContacts)
	require.Equal(t, int64(120), dashboard.Summary.TotalViews)
	require.Equal(t, int64(34), dashboard.Summary.TotalRegistrationClicks)

	require.Len(t, dashboard.RecentActivities.Events, 1)
	require.Len(t, dashboard.Charts.MonthlyViews, 1)
	require.Equal(t, int64(40), dashboard.Charts.MonthlyViews[0].Views)
}

func TestDashboardPropagatesRepoErrors(t *testing.T) {
	tracker := events.NewTracker(&fixedTotalsRepo{})
	repoErr := errors.New("stats query failed")
	service := NewService(&stubStatsRepo{err: repoErr}, tracker)

	_, err := service.Dashboard(context.Background())
	require.ErrorIs(t, err, repoErr)
}

func TestEventReportShape(t *testing.T) {
	tracker := events.NewTracker(&fixedTotalsRepo{})
	repo := &stubStatsRepo{
		totalEvents: 6,
		topEvents: []EventEngagement{
			{ID: "evt-1", Title: "Blockchain Hackathon", Views: 90, RegistrationClicks: 25},
			{ID: "evt-2", Title: "IoT Security Workshop", Views: 60, RegistrationClicks: 10},
		},
		statuses: []StatusCount{
			{Status: "upcoming", Count: 2},
			{Status: "completed", Count: 4},
		},
	}
	service := NewService(repo, tracker)

	report, err := service.EventReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, report.TotalEvents)
	require.Len(t, report.TopEvents, 2)
	require.Equal(t, "Blockchain Hackathon", report.TopEvents[0].Title)
	require.Len(t, report.StatusDistribution, 2)
}
