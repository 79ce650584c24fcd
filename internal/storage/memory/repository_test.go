package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mibcs/clubsite/internal/domain/events"
)

func seedEvent(t *testing.T, repo events.Repository, id string, status events.Status, start time.Time) *events.Event {
	t.Helper()
	event, err := repo.Create(context.Background(), events.CreateParams{
		ID:        id,
		Title:     "Event " + id,
		StartTime: start,
		Type:      events.TypeWorkshop,
		Status:    status,
	})
	require.NoError(t, err)
	return event
}

func TestListOrdersUpcomingAscending(t *testing.T) {
	repo := NewRepository().Events()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FA2", events.StatusUpcoming, base.AddDate(0, 0, 2))
	seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FA1", events.StatusUpcoming, base)
	seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FA3", events.StatusUpcoming, base.AddDate(0, 0, 1))

	result, err := repo.List(context.Background(), events.Filters{Status: events.StatusUpcoming}, events.Pagination{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Events, 3)
	require.Equal(t, 3, result.Total)

	for i := 1; i < len(result.Events); i++ {
		require.False(t, result.Events[i].StartTime.Before(result.Events[i-1].StartTime))
	}
}

func TestListOrdersCompletedDescending(t *testing.T) {
	repo := NewRepository().Events()
	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FB1", events.StatusCompleted, base)
	seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FB2", events.StatusCompleted, base.AddDate(0, 0, 5))

	result, err := repo.List(context.Background(), events.Filters{Status: events.StatusCompleted}, events.Pagination{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Events, 2)
	require.True(t, result.Events[0].StartTime.After(result.Events[1].StartTime))
}

func TestListPaginationTotalSpansAllPages(t *testing.T) {
	repo := NewRepository().Events()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("01ARZ3NDEKTSV4RRFFQ69G5FC%d", i)
		seedEvent(t, repo, id, events.StatusUpcoming, base.AddDate(0, 0, i))
	}

	first, err := repo.List(context.Background(), events.Filters{}, events.Pagination{Limit: 3, Page: 1})
	require.NoError(t, err)
	require.Len(t, first.Events, 3)
	require.Equal(t, 7, first.Total)

	last, err := repo.List(context.Background(), events.Filters{}, events.Pagination{Limit: 3, Page: 3})
	require.NoError(t, err)
	require.Len(t, last.Events, 1)
	require.Equal(t, 7, last.Total)

	beyond, err := repo.List(context.Background(), events.Filters{}, events.Pagination{Limit: 3, Page: 9})
	require.NoError(t, err)
	require.Empty(t, beyond.Events)
	require.Equal(t, 7, beyond.Total)
}

func TestListFiltersByDomainAndFeatured(t *testing.T) {
	repo := NewRepository().Events()
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.Create(context.Background(), events.CreateParams{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FD1",
		Title:     "ML night",
		StartTime: base,
		Status:    events.StatusUpcoming,
		Domains:   []string{events.DomainML},
		Featured:  true,
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), events.CreateParams{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FD2",
		Title:     "IoT day",
		StartTime: base,
		Status:    events.StatusUpcoming,
		Domains:   []string{events.DomainIoT},
	})
	require.NoError(t, err)

	result, err := repo.List(context.Background(), events.Filters{Domain: events.DomainML}, events.Pagination{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	require.Equal(t, "ML night", result.Events[0].Title)

	featured := true
	result, err = repo.List(context.Background(), events.Filters{Featured: &featured}, events.Pagination{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	require.Equal(t, "ML night", result.Events[0].Title)
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	repo := NewRepository().Events()
	seeded := seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FE1", events.StatusUpcoming, time.Now())

	first, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	first.Title = "mutated"

	second, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotEqual(t, "mutated", second.Title)
}

func TestIncrementsAreAtomicAndMissTracked(t *testing.T) {
	repo := NewRepository().Events()
	seeded := seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FF1", events.StatusUpcoming, time.Now())

	require.NoError(t, repo.IncrementViews(context.Background(), seeded.ID))
	require.NoError(t, repo.IncrementViews(context.Background(), seeded.ID))
	require.NoError(t, repo.IncrementRegistrationClicks(context.Background(), seeded.ID))

	require.ErrorIs(t, repo.IncrementViews(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FXX"), events.ErrNotFound)

	event, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), event.Views)
	require.Equal(t, int64(1), event.RegistrationClicks)

	totals, err := repo.EngagementTotals(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), totals.TotalViews)
	require.Equal(t, int64(1), totals.TotalRegistrationClicks)
}

func TestDeleteRemovesEvent(t *testing.T) {
	repo := NewRepository().Events()
	seeded := seedEvent(t, repo, "01ARZ3NDEKTSV4RRFFQ69G5FG1", events.StatusUpcoming, time.Now())

	require.NoError(t, repo.Delete(context.Background(), seeded.ID))
	_, err := repo.GetByID(context.Background(), seeded.ID)
	require.ErrorIs(t, err, events.ErrNotFound)
	require.ErrorIs(t, repo.Delete(context.Background(), seeded.ID), events.ErrNotFound)
}
