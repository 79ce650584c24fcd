package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mibcs/clubsite/internal/domain/analytics"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

var _ analytics.Repository = (*StatsRepository)(nil)

func (r *StatsRepository) EventCounts(ctx context.Context) (int, int, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'upcoming') FROM events`)
	var total, upcoming int
	if err := row.Scan(&total, &upcoming); err != nil {
		return 0, 0, fmt.Errorf("event counts: %w", err)
	}
	return total, upcoming, nil
}

func (r *StatsRepository) AchievementCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM achievements`).Scan(&count); err != nil {
		return 0, fmt.Errorf("achievement count: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) ProjectCounts(ctx context.Context) (int, int, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COUNT(*), COUNT(*) FILTER (WHERE status IN ('ongoing', 'planning')) FROM projects`)
	var total, active int
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("project counts: %w", err)
	}
	return total, active, nil
}

func (r *StatsRepository) ActiveMemberCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE is_active`).Scan(&count); err != nil {
		return 0, fmt.Errorf("active member count: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) PendingContactCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE status = 'new'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pending contact count: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) RecentEvents(ctx context.Context, limit int) ([]analytics.RecentEvent, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, start_time, status, created_at
  FROM events
 ORDER BY created_at DESC
 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()

	items := make([]analytics.RecentEvent, 0, limit)
	for rows.Next() {
		var item analytics.RecentEvent
		if err := rows.Scan(&item.ID, &item.Title, &item.StartTime, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent event: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *StatsRepository) RecentAchievements(ctx context.Context, limit int) ([]analytics.RecentAchievement, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, category, year, created_at
  FROM achievements
 ORDER BY created_at DESC
 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent achievements: %w", err)
	}
	defer rows.Close()

	items := make([]analytics.RecentAchievement, 0, limit)
	for rows.Next() {
		var item analytics.RecentAchievement
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.Year, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent achievement: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *StatsRepository) RecentContacts(ctx context.Context, limit int) ([]analytics.RecentContact, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, email, subject, status, created_at
  FROM contacts
 ORDER BY created_at DESC
 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent contacts: %w", err)
	}
	defer rows.Close()

	items := make([]analytics.RecentContact, 0, limit)
	for rows.Next() {
		var item analytics.RecentContact
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Subject, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent contact: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *StatsRepository) MonthlyViews(ctx context.Context, months int) ([]analytics.MonthlyViews, error) {
	rows, err := r.pool.Query(ctx, `
SELECT EXTRACT(YEAR FROM created_at)::int AS year,
       EXTRACT(MONTH FROM created_at)::int AS month,
       COALESCE(SUM(views), 0) AS views,
       COUNT(*) AS events
  FROM events
 GROUP BY 1, 2
 ORDER BY 1 DESC, 2 DESC
 LIMIT $1`, months)
	if err != nil {
		return nil, fmt.Errorf("monthly views: %w", err)
	}
	defer rows.Close()

	buckets := make([]analytics.MonthlyViews, 0, months)
	for rows.Next() {
		var bucket analytics.MonthlyViews
		if err := rows.Scan(&bucket.Year, &bucket.Month, &bucket.Views, &bucket.Events); err != nil {
			return nil, fmt.Errorf("scan monthly views: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Oldest bucket first for charting.
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	return buckets, nil
}

func (r *StatsRepository) TopEventsByViews(ctx context.Context, limit int) ([]analytics.EventEngagement, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, start_time, status, registration_link, views, registration_clicks
  FROM events
 ORDER BY views DESC, id ASC
 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top events: %w", err)
	}
	defer rows.Close()

	items := make([]analytics.EventEngagement, 0, limit)
	for rows.Next() {
		var item analytics.EventEngagement
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.StartTime,
			&item.Status,
			&item.RegistrationLink,
			&item.Views,
			&item.RegistrationClicks,
		); err != nil {
			return nil, fmt.Errorf("scan top event: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *StatsRepository) StatusDistribution(ctx context.Context) ([]analytics.StatusCount, error) {
	rows, err := r.pool.Query(ctx, `
SELECT status, COUNT(*) FROM events GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	defer rows.Close()

	items := make([]analytics.StatusCount, 0, 4)
	for rows.Next() {
		var item analytics.StatusCount
		if err := rows.Scan(&item.Status, &item.Count); err != nil {
			return nil, fmt.Errorf("scan status distribution: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
