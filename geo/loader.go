package geo

import (
	"context"
	"village-profile/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PointSource interface {
	ListTourismSpots(ctx context.Context) ([]models.TourismSpot, error)
	ListBusinesses(ctx context.Context) ([]models.Business, error)
}

type Points struct {
	TourismSpots []models.TourismSpot
	Businesses   []models.Business
}

// Load fetches both collections concurrently. If either read fails both
// sets come from the fallback; an empty set falls back on its own.
func Load(ctx context.Context, src PointSource, fallback Points, logger *zap.Logger) Points {
	var pts Points

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spots, err := src.ListTourismSpots(gctx)
		pts.TourismSpots = spots
		return err
	})
	g.Go(func() error {
		businesses, err := src.ListBusinesses(gctx)
		pts.Businesses = businesses
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Warn("Using fallback map points", zap.Error(err))
		pts = fallback
	}
	if len(pts.TourismSpots) == 0 {
		pts.TourismSpots = fallback.TourismSpots
	}
	if len(pts.Businesses) == 0 {
		pts.Businesses = fallback.Businesses
	}

	pts.Businesses = PlaceBusinesses(pts.Businesses)
	return pts
}
