package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"village-profile/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLiteStore keeps the collections in a local sqlite file through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(&models.Article{}, &models.TourismSpot{}, &models.Business{}, &models.Feedback{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

func (s *SQLiteStore) ListTourismSpots(ctx context.Context) ([]models.TourismSpot, error) {
	var spots []models.TourismSpot
	if err := s.db.WithContext(ctx).Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("listing tourism spots: %w", err)
	}
	return spots, nil
}

func (s *SQLiteStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business
	if err := s.db.WithContext(ctx).Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	return businesses, nil
}

func (s *SQLiteStore) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	if err := s.db.WithContext(ctx).Create(fb).Error; err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

// CountFeedback is used by the seed command and tests.
func (s *SQLiteStore) CountFeedback(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Feedback{}).Count(&n).Error
	return n, err
}

// Seed upserts the dataset by primary key.
func (s *SQLiteStore) Seed(ctx context.Context, articles []models.Article, spots []models.TourismSpot, businesses []models.Business) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := func() *gorm.DB { return tx.Clauses(clause.OnConflict{UpdateAll: true}) }
		if len(articles) > 0 {
			if err := upsert().Create(&articles).Error; err != nil {
				return fmt.Errorf("seeding articles: %w", err)
			}
		}
		if len(spots) > 0 {
			if err := upsert().Create(&spots).Error; err != nil {
				return fmt.Errorf("seeding tourism spots: %w", err)
			}
		}
		if len(businesses) > 0 {
			if err := upsert().Create(&businesses).Error; err != nil {
				return fmt.Errorf("seeding businesses: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
