// Package geo turns tourism spots and businesses into map markers.
package geo

import (
	"strconv"
	"village-profile/models"
)

// Village centre, used to place businesses that come without coordinates.
const (
	CenterLat = -7.2565
	CenterLng = 112.7511
	spread    = 0.001
)

type Kind string

const (
	KindTourism  Kind = "tourism"
	KindBusiness Kind = "business"
)

type Marker struct {
	Kind        Kind    `json:"kind"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Location    string  `json:"location,omitempty"`
	DetailURL   string  `json:"detail_url"`
}

// Layers selects which marker sets are shown.
type Layers struct {
	Tourism    bool `json:"tourism"`
	Businesses bool `json:"businesses"`
}

func AllLayers() Layers {
	return Layers{Tourism: true, Businesses: true}
}

// ParseToggle reads a layer toggle from a query value. Anything that is
// not a recognisable "off" keeps the layer on.
func ParseToggle(v string) bool {
	if v == "" {
		return true
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return v != "off" && v != "no"
	}
	return on
}

// Markers renders every point of each enabled layer. Tourism markers come
// first.
func Markers(spots []models.TourismSpot, businesses []models.Business, layers Layers) []Marker {
	out := make([]Marker, 0, len(spots)+len(businesses))
	if layers.Tourism {
		for _, s := range spots {
			out = append(out, Marker{
				Kind:        KindTourism,
				ID:          s.ID,
				Name:        s.Name,
				Description: s.Description,
				ImageURL:    s.ImageURL,
				Lat:         s.Lat,
				Lng:         s.Lng,
				Category:    s.Category,
				DetailURL:   "/map/tourism/" + s.ID,
			})
		}
	}
	if layers.Businesses {
		for _, b := range businesses {
			out = append(out, Marker{
				Kind:        KindBusiness,
				ID:          b.ID,
				Name:        b.Name,
				Description: b.Description,
				ImageURL:    b.ImageURL,
				Lat:         b.Lat,
				Lng:         b.Lng,
				Phone:       b.Contact,
				Location:    b.Location,
				DetailURL:   "/map/business/" + b.ID,
			})
		}
	}
	return out
}

// PlaceBusinesses gives businesses without coordinates a position next to
// the village centre, offset by their index.
func PlaceBusinesses(businesses []models.Business) []models.Business {
	out := make([]models.Business, len(businesses))
	for i, b := range businesses {
		if !b.HasCoords() {
			b.Lat = CenterLat + float64(i)*spread
			b.Lng = CenterLng + float64(i)*spread
		}
		out[i] = b
	}
	return out
}

// Find returns the marker of the given kind and id, regardless of layers.
func Find(spots []models.TourismSpot, businesses []models.Business, kind Kind, id string) (Marker, bool) {
	layers := Layers{Tourism: kind == KindTourism, Businesses: kind == KindBusiness}
	for _, m := range Markers(spots, businesses, layers) {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}
