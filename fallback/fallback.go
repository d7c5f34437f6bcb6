// Package fallback holds the fixed local dataset shown whenever the store
// is unreachable or returns nothing.
package fallback

import (
	"embed"
	"fmt"
	"village-profile/models"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackFS embed.FS

type Dataset struct {
	Articles     []models.Article     `yaml:"articles"`
	TourismSpots []models.TourismSpot `yaml:"tourism_spots"`
	Businesses   []models.Business    `yaml:"businesses"`
}

// Load parses the embedded dataset. Each call returns fresh slices, so
// callers may mutate the result.
func Load() (*Dataset, error) {
	data, err := fallbackFS.ReadFile("fallback.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading fallback dataset: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing fallback dataset: %w", err)
	}
	return &ds, nil
}
