package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client   *maps.Client
	region   string
	language string
}

func NewGoogleMapsProvider(apiKey, region, language string) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client:   client,
		region:   region,
		language: language,
	}, nil
}

func (g *GoogleMapsProvider) GetDistance(ctx context.Context, request *DistanceRequest) (*DistanceResponse, error) {
	mode := maps.TravelModeDriving
	if request.Mode != "" {
		mode = maps.Mode(request.Mode)
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{request.Origin},
		Destinations: []string{request.Destination},
		Mode:         mode,
		Units:        maps.UnitsMetric,
		Language:     g.language,
	}

	resp, err := g.client.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("no route found between %q and %q", request.Origin, request.Destination)
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, fmt.Errorf("no route found between %q and %q: %s", request.Origin, request.Destination, element.Status)
	}

	return &DistanceResponse{
		DistanceKm:      float64(element.Distance.Meters) / 1000,
		DurationSeconds: int(element.Duration.Seconds()),
		OriginAddress:   resp.OriginAddresses[0],
		DestAddress:     resp.DestinationAddresses[0],
	}, nil
}

func (g *GoogleMapsProvider) Autocomplete(ctx context.Context, request *AutocompleteRequest) (*AutocompleteResponse, error) {
	req := &maps.PlaceAutocompleteRequest{
		Input:    request.Input,
		Language: g.language,
	}
	if request.Region != "" {
		req.Components = map[maps.Component][]string{
			maps.ComponentCountry: {request.Region},
		}
	} else if g.region != "" {
		req.Components = map[maps.Component][]string{
			maps.ComponentCountry: {g.region},
		}
	}

	resp, err := g.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place autocomplete failed: %w", err)
	}

	predictions := make([]Prediction, len(resp.Predictions))
	for i, p := range resp.Predictions {
		predictions[i] = Prediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		}
	}

	return &AutocompleteResponse{Predictions: predictions}, nil
}

func (g *GoogleMapsProvider) GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	req := &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: g.language,
	}

	resp, err := g.client.PlaceDetails(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place details failed: %w", err)
	}

	return &PlaceDetails{
		PlaceID: resp.PlaceID,
		Name:    resp.Name,
		Address: resp.FormattedAddress,
		Location: Location{
			Latitude:  resp.Geometry.Location.Lat,
			Longitude: resp.Geometry.Location.Lng,
		},
		Types: resp.Types,
	}, nil
}
