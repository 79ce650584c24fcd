package memory

import (
	"context"
	"sort"

	"github.com/mibcs/clubsite/internal/domain/analytics"
	"github.com/mibcs/clubsite/internal/domain/events"
)

type StatsRepository struct {
	state *state
}

var _ analytics.Repository = (*StatsRepository)(nil)

func (r *StatsRepository) EventCounts(ctx context.Context) (int, int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	upcoming := 0
	for _, event := range r.state.events {
		if event.Status == events.StatusUpcoming {
			upcoming++
		}
	}
	return len(r.state.events), upcoming, nil
}

func (r *StatsRepository) AchievementCount(ctx context.Context) (int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return len(r.state.achievements), nil
}

func (r *StatsRepository) ProjectCounts(ctx context.Context) (int, int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	active := 0
	for _, project := range r.state.projects {
		if project.Status == "ongoing" || project.Status == "planning" {
			active++
		}
	}
	return len(r.state.projects), active, nil
}

func (r *StatsRepository) ActiveMemberCount(ctx context.Context) (int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	active := 0
	for _, member := range r.state.members {
		if member.IsActive {
			active++
		}
	}
	return active, nil
}

func (r *StatsRepository) PendingContactCount(ctx context.Context) (int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	pending := 0
	for _, contact := range r.state.contacts {
		if contact.Status == "new" {
			pending++
		}
	}
	return pending, nil
}

func (r *StatsRepository) RecentEvents(ctx context.Context, limit int) ([]analytics.RecentEvent, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	items := make([]analytics.RecentEvent, 0, len(r.state.events))
	for _, event := range r.state.events {
		items = append(items, analytics.RecentEvent{
			ID:        event.ID,
			Title:     event.Title,
			StartTime: event.StartTime,
			Status:    string(event.Status),
			CreatedAt: event.CreatedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *StatsRepository) RecentAchievements(ctx context.Context, limit int) ([]analytics.RecentAchievement, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	items := append([]analytics.RecentAchievement(nil), r.state.achievements...)
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *StatsRepository) RecentContacts(ctx context.Context, limit int) ([]analytics.RecentContact, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	items := append([]analytics.RecentContact(nil), r.state.contacts...)
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *StatsRepository) MonthlyViews(ctx context.Context, months int) ([]analytics.MonthlyViews, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	type key struct {
		year  int
		month int
	}
	buckets := make(map[key]*analytics.MonthlyViews)
	for _, event := range r.state.events {
		k := key{year: event.CreatedAt.Year(), month: int(event.CreatedAt.Month())}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &analytics.MonthlyViews{Year: k.year, Month: k.month}
			buckets[k] = bucket
		}
		bucket.Views += event.Views
		bucket.Events++
	}

	items := make([]analytics.MonthlyViews, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, *bucket)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Year != items[j].Year {
			return items[i].Year < items[j].Year
		}
		return items[i].Month < items[j].Month
	})
	if len(items) > months {
		items = items[len(items)-months:]
	}
	return items, nil
}

func (r *StatsRepository) TopEventsByViews(ctx context.Context, limit int) ([]analytics.EventEngagement, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	items := make([]analytics.EventEngagement, 0, len(r.state.events))
	for _, event := range r.state.events {
		items = append(items, analytics.EventEngagement{
			ID:                 event.ID,
			Title:              event.Title,
			StartTime:          event.StartTime,
			Status:             string(event.Status),
			RegistrationLink:   event.RegistrationLink,
			Views:              event.Views,
			RegistrationClicks: event.RegistrationClicks,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Views != items[j].Views {
			return items[i].Views > items[j].Views
		}
		return items[i].ID < items[j].ID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *StatsRepository) StatusDistribution(ctx context.Context) ([]analytics.StatusCount, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	counts := make(map[string]int)
	for _, event := range r.state.events {
		counts[string(event.Status)]++
	}
	items := make([]analytics.StatusCount, 0, len(counts))
	for status, count := range counts {
		items = append(items, analytics.StatusCount{Status: status, Count: count})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Status < items[j].Status })
	return items, nil
}
