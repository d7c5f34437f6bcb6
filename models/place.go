package models

import "time"

type TourismSpot struct {
	ID          string    `json:"id" gorm:"primaryKey" bson:"_id" yaml:"id"`
	Name        string    `json:"name" bson:"name" yaml:"name"`
	Description string    `json:"description" bson:"description" yaml:"description"`
	ImageURL    string    `json:"image_url" bson:"image_url" yaml:"image_url"`
	Lat         float64   `json:"lat" bson:"lat" yaml:"lat"`
	Lng         float64   `json:"lng" bson:"lng" yaml:"lng"`
	Category    string    `json:"category" bson:"category" yaml:"category"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
}

// Business is a local shop or service. Lat/Lng are zero when the source
// row carries only a textual location.
type Business struct {
	ID          string    `json:"id" gorm:"primaryKey" bson:"_id" yaml:"id"`
	Name        string    `json:"name" bson:"name" yaml:"name"`
	Description string    `json:"description" bson:"description" yaml:"description"`
	Contact     string    `json:"contact" bson:"contact" yaml:"contact"`
	Location    string    `json:"location" bson:"location" yaml:"location"`
	ImageURL    string    `json:"image_url" bson:"image_url" yaml:"image_url"`
	Lat         float64   `json:"lat" bson:"lat" yaml:"lat"`
	Lng         float64   `json:"lng" bson:"lng" yaml:"lng"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
}

func (b Business) HasCoords() bool {
	return b.Lat != 0 || b.Lng != 0
}

func (TourismSpot) TableName() string {
	return "tourism_spots"
}

func (Business) TableName() string {
	return "businesses"
}
