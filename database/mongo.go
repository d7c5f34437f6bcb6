package database

import (
	"context"
	"fmt"
	"time"
	"village-profile/config"
	"village-profile/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	client       *mongo.Client
	articles     *mongo.Collection
	tourismSpots *mongo.Collection
	businesses   *mongo.Collection
	feedbacks    *mongo.Collection
}

func NewMongoStore(ctx context.Context, cfg config.StoreConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.TimeoutDuration())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("can't ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client:       client,
		articles:     db.Collection(models.Article{}.TableName()),
		tourismSpots: db.Collection(models.TourismSpot{}.TableName()),
		businesses:   db.Collection(models.Business{}.TableName()),
		feedbacks:    db.Collection(models.Feedback{}.TableName()),
	}

	if err := s.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("can't create indexes: %w", err)
	}
	return s, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	_, err := s.articles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (s *MongoStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var articles []models.Article
	if err := findAll(ctx, s.articles, opts, &articles); err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

func (s *MongoStore) ListTourismSpots(ctx context.Context) ([]models.TourismSpot, error) {
	var spots []models.TourismSpot
	if err := findAll(ctx, s.tourismSpots, options.Find(), &spots); err != nil {
		return nil, fmt.Errorf("listing tourism spots: %w", err)
	}
	return spots, nil
}

func (s *MongoStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business
	if err := findAll(ctx, s.businesses, options.Find(), &businesses); err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	return businesses, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, out interface{}) error {
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *MongoStore) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	if _, err := s.feedbacks.InsertOne(ctx, fb); err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

// Seed replaces documents by _id so it can be rerun.
func (s *MongoStore) Seed(ctx context.Context, articles []models.Article, spots []models.TourismSpot, businesses []models.Business) error {
	opts := options.Replace().SetUpsert(true)
	for _, a := range articles {
		if _, err := s.articles.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, opts); err != nil {
			return fmt.Errorf("seeding article %s: %w", a.ID, err)
		}
	}
	for _, sp := range spots {
		if _, err := s.tourismSpots.ReplaceOne(ctx, bson.M{"_id": sp.ID}, sp, opts); err != nil {
			return fmt.Errorf("seeding tourism spot %s: %w", sp.ID, err)
		}
	}
	for _, b := range businesses {
		if _, err := s.businesses.ReplaceOne(ctx, bson.M{"_id": b.ID}, b, opts); err != nil {
			return fmt.Errorf("seeding business %s: %w", b.ID, err)
		}
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
