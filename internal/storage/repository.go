package storage

import (
	"github.com/mibcs/clubsite/internal/domain/analytics"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/users"
)

// Repository bundles the per-domain repositories a backend must provide.
type Repository interface {
	Events() events.Repository
	Users() users.Repository
	Stats() analytics.Repository
}
