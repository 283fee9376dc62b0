package maps

import "context"

// MapsProvider resolves the routing data behind quote creation: the driving
// distance between two addresses, place autocomplete for the search box and
// place details for a selected prediction.
type MapsProvider interface {
	GetDistance(ctx context.Context, request *DistanceRequest) (*DistanceResponse, error)
	Autocomplete(ctx context.Context, request *AutocompleteRequest) (*AutocompleteResponse, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type DistanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"` // driving, walking, bicycling
}

type DistanceResponse struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationSeconds int     `json:"duration_seconds"`
	OriginAddress   string  `json:"origin_address"`
	DestAddress     string  `json:"destination_address"`
}

type AutocompleteRequest struct {
	Input    string `json:"input"`
	Region   string `json:"region"`
	Language string `json:"language"`
}

type AutocompleteResponse struct {
	Predictions []Prediction `json:"predictions"`
}

type Prediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type PlaceDetails struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Address  string   `json:"formatted_address"`
	Location Location `json:"location"`
	Types    []string `json:"types"`
}
