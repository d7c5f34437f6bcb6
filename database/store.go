package database

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"village-profile/config"
	"village-profile/models"
)

// ErrUnavailable is returned by a store that has no backend behind it.
var ErrUnavailable = errors.New("store unavailable")

// Store is the remote data collaborator the pages read from and write
// feedback to.
type Store interface {
	// ListArticles returns all articles, newest first.
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListTourismSpots(ctx context.Context) ([]models.TourismSpot, error)
	ListBusinesses(ctx context.Context) ([]models.Business, error)
	InsertFeedback(ctx context.Context, fb *models.Feedback) error
	Close() error
}

// Seeder is implemented by stores that can be filled with a dataset.
type Seeder interface {
	Seed(ctx context.Context, articles []models.Article, spots []models.TourismSpot, businesses []models.Business) error
}

// Open picks the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		s, err := OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mongo":
		s, err := NewMongoStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "rest":
		return NewRESTStore(cfg.URL, cfg.APIKey, &http.Client{Timeout: cfg.TimeoutDuration()}), nil
	case "none":
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// NoopStore fails every call, so the site runs purely on fallback data.
type NoopStore struct{}

func (NoopStore) ListArticles(context.Context) ([]models.Article, error) {
	return nil, ErrUnavailable
}

func (NoopStore) ListTourismSpots(context.Context) ([]models.TourismSpot, error) {
	return nil, ErrUnavailable
}

func (NoopStore) ListBusinesses(context.Context) ([]models.Business, error) {
	return nil, ErrUnavailable
}

func (NoopStore) InsertFeedback(context.Context, *models.Feedback) error {
	return ErrUnavailable
}

func (NoopStore) Close() error { return nil }
