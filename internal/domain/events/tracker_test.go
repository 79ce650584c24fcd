package events

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackerRecordViewUnknownEvent(t *testing.T) {
	tracker := NewTracker(newFakeRepo())
	err := tracker.RecordView(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTrackerRecordRegistrationClickUnknownEvent(t *testing.T) {
	tracker := NewTracker(newFakeRepo())
	err := tracker.RecordRegistrationClick(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTrackerConcurrentIncrementsAllLand(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)
	tracker := NewTracker(repo)

	event, err := store.Create(context.Background(), validInput())
	require.NoError(t, err)

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = tracker.RecordView(context.Background(), event.ID)
		}()
		go func() {
			defer wg.Done()
			_ = tracker.RecordRegistrationClick(context.Background(), event.ID)
		}()
	}
	wg.Wait()

	totals, err := tracker.Summarize(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(workers), totals.TotalViews)
	require.Equal(t, int64(workers), totals.TotalRegistrationClicks)
}

func TestTrackerClickCountsWithoutRegistrationLink(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)
	tracker := NewTracker(repo)

	input := validInput()
	input.Status = string(StatusCompleted)
	event, err := store.Create(context.Background(), input)
	require.NoError(t, err)
	require.False(t, event.CanRegister())

	require.NoError(t, tracker.RecordRegistrationClick(context.Background(), event.ID))

	totals, err := tracker.Summarize(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), totals.TotalRegistrationClicks)
}
