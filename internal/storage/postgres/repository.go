package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mibcs/clubsite/internal/domain/analytics"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/users"
	"github.com/mibcs/clubsite/internal/storage"
)

// Repository implements storage.Repository on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool

	events *EventRepository
	users  *UserRepository
	stats  *StatsRepository
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{
		pool:   pool,
		events: &EventRepository{pool: pool},
		users:  &UserRepository{pool: pool},
		stats:  &StatsRepository{pool: pool},
	}, nil
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

// Ping verifies the backing store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
