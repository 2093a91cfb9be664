package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

var (
	// ErrRouteNotFound is returned when no route is stored under the requested key.
	ErrRouteNotFound = errors.New("route not found")
	// ErrRouteExists is returned when another writer stored the same key first.
	ErrRouteExists = errors.New("route already exists")
)

type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the route store used by the route service.
type Interface interface {
	FindRoute(ctx context.Context, key models.RouteKey) (*models.Route, error)
	InsertRoute(ctx context.Context, route *models.Route) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
