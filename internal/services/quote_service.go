package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rideinbls/internal/models"
	"rideinbls/internal/pricing"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/logger"
	"rideinbls/pkg/maps"
)

// QuoteService owns the quote-session lifecycle: a route search seeds a
// selection store with the listing's rate cards, selection edits mutate it
// and reprice synchronously, and payment capture or expiry discards it.
type QuoteService interface {
	CreateQuote(ctx context.Context, request *QuoteRequest) (*QuoteResponse, error)
	GetSelection(ctx context.Context, sessionID, vehicleID string) (*VehicleQuote, error)
	UpdateSelection(ctx context.Context, sessionID, vehicleID string, request *SelectionUpdateRequest) (*VehicleQuote, error)
	GetPrice(ctx context.Context, sessionID, vehicleID string) (*pricing.FareResult, error)
	ValidateForSubmission(ctx context.Context, sessionID, vehicleID string) (*pricing.Validation, error)
	DiscardSelection(ctx context.Context, sessionID, vehicleID string) error
	DiscardSession(ctx context.Context, sessionID string)

	Session(sessionID string) (*pricing.Store, bool)
	StartSweeper(ctx context.Context, interval time.Duration)

	Autocomplete(ctx context.Context, input string) (*maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
}

type quoteService struct {
	sessions     *pricing.SessionManager
	vehicleRepo  interfaces.VehicleRepository
	mapsProvider maps.MapsProvider
	logger       *logger.Logger
}

func NewQuoteService(
	sessions *pricing.SessionManager,
	vehicleRepo interfaces.VehicleRepository,
	mapsProvider maps.MapsProvider,
	log *logger.Logger,
) QuoteService {
	return &quoteService{
		sessions:     sessions,
		vehicleRepo:  vehicleRepo,
		mapsProvider: mapsProvider,
		logger:       log,
	}
}

type QuoteRequest struct {
	Origin      string             `json:"origin" validate:"required"`
	Destination string             `json:"destination" validate:"required"`
	VehicleType models.VehicleType `json:"vehicle_type,omitempty"`
}

type QuoteResponse struct {
	SessionID       string          `json:"session_id"`
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	DistanceKm      float64         `json:"distance_km"`
	DurationSeconds int             `json:"duration_seconds"`
	ExpiresIn       int64           `json:"expires_in"`
	Vehicles        []*VehicleQuote `json:"vehicles"`
}

// VehicleQuote pairs a vehicle with the session's current selection and
// cached fare for it.
type VehicleQuote struct {
	Vehicle   *models.Vehicle    `json:"vehicle,omitempty"`
	VehicleID string             `json:"vehicle_id"`
	Selection pricing.Selection  `json:"selection"`
	Fare      pricing.FareResult `json:"fare"`
}

// SelectionUpdateRequest is a partial edit; nil fields keep their current
// value and an empty time string clears the field.
type SelectionUpdateRequest struct {
	IsRoundTrip *bool   `json:"is_round_trip,omitempty"`
	StartAt     *string `json:"start_at,omitempty"`
	EndAt       *string `json:"end_at,omitempty"`
}

func (s *quoteService) CreateQuote(ctx context.Context, request *QuoteRequest) (*QuoteResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if request.VehicleType != "" && !models.IsValidVehicleType(request.VehicleType) {
		return nil, fmt.Errorf("invalid vehicle type %q", request.VehicleType)
	}

	distance, err := s.mapsProvider.GetDistance(ctx, &maps.DistanceRequest{
		Origin:      request.Origin,
		Destination: request.Destination,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve route: %w", err)
	}

	params := &utils.PaginationParams{Page: 1, PageSize: utils.MaxPageSize, Sort: "price_per_km", Order: "asc"}
	vehicles, _, err := s.vehicleRepo.ListBookable(ctx, request.VehicleType, params)
	if err != nil {
		return nil, err
	}

	trip := pricing.NewTripContext(distance.DistanceKm)
	rates := make([]pricing.RateCard, len(vehicles))
	for i, v := range vehicles {
		rates[i] = pricing.NewRateCard(v.ID.Hex(), v.PricePerKm, v.PricePerHour)
	}

	sessionID, store := s.sessions.Create(trip, rates...)

	quotes := make([]*VehicleQuote, len(vehicles))
	for i, v := range vehicles {
		id := v.ID.Hex()
		quotes[i] = &VehicleQuote{
			Vehicle:   v,
			VehicleID: id,
			Selection: store.GetSelection(id),
			Fare:      store.GetPrice(id),
		}
	}

	s.logger.LogQuoteEvent(sessionID, utils.EventQuoteCreated, map[string]interface{}{
		"origin":      distance.OriginAddress,
		"destination": distance.DestAddress,
		"distance_km": distance.DistanceKm,
		"vehicles":    len(vehicles),
	})

	return &QuoteResponse{
		SessionID:       sessionID,
		Origin:          distance.OriginAddress,
		Destination:     distance.DestAddress,
		DistanceKm:      distance.DistanceKm,
		DurationSeconds: distance.DurationSeconds,
		ExpiresIn:       int64(utils.QuoteSessionTTL.Seconds()),
		Vehicles:        quotes,
	}, nil
}

func (s *quoteService) GetSelection(ctx context.Context, sessionID, vehicleID string) (*VehicleQuote, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, errors.New(utils.ErrQuoteNotFound)
	}

	return &VehicleQuote{
		VehicleID: vehicleID,
		Selection: store.GetSelection(vehicleID),
		Fare:      store.GetPrice(vehicleID),
	}, nil
}

func (s *quoteService) UpdateSelection(ctx context.Context, sessionID, vehicleID string, request *SelectionUpdateRequest) (*VehicleQuote, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, errors.New(utils.ErrQuoteNotFound)
	}

	upd := pricing.SelectionUpdate{IsRoundTrip: request.IsRoundTrip}
	if request.StartAt != nil {
		t, err := pricing.ParseSelectionTime(*request.StartAt)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", *request.StartAt, err)
		}
		upd.StartAt = &t
	}
	if request.EndAt != nil {
		t, err := pricing.ParseSelectionTime(*request.EndAt)
		if err != nil {
			return nil, fmt.Errorf("invalid end time %q: %w", *request.EndAt, err)
		}
		upd.EndAt = &t
	}

	store.UpdateSelection(vehicleID, upd)

	return &VehicleQuote{
		VehicleID: vehicleID,
		Selection: store.GetSelection(vehicleID),
		Fare:      store.GetPrice(vehicleID),
	}, nil
}

func (s *quoteService) GetPrice(ctx context.Context, sessionID, vehicleID string) (*pricing.FareResult, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, errors.New(utils.ErrQuoteNotFound)
	}

	fare := store.GetPrice(vehicleID)
	return &fare, nil
}

func (s *quoteService) ValidateForSubmission(ctx context.Context, sessionID, vehicleID string) (*pricing.Validation, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, errors.New(utils.ErrQuoteNotFound)
	}

	verdict := store.ValidateForSubmission(vehicleID)
	return &verdict, nil
}

func (s *quoteService) DiscardSelection(ctx context.Context, sessionID, vehicleID string) error {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return errors.New(utils.ErrQuoteNotFound)
	}

	store.Discard(vehicleID)
	return nil
}

func (s *quoteService) DiscardSession(ctx context.Context, sessionID string) {
	s.sessions.Discard(sessionID)
}

func (s *quoteService) Session(sessionID string) (*pricing.Store, bool) {
	return s.sessions.Get(sessionID)
}

// StartSweeper drops expired quote sessions in the background until the
// context is cancelled.
func (s *quoteService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if dropped := s.sessions.Sweep(now); dropped > 0 {
					s.logger.WithField("dropped", dropped).Debug("Swept expired quote sessions")
				}
			}
		}
	}()
}

func (s *quoteService) Autocomplete(ctx context.Context, input string) (*maps.AutocompleteResponse, error) {
	if input == "" {
		return &maps.AutocompleteResponse{Predictions: []maps.Prediction{}}, nil
	}
	return s.mapsProvider.Autocomplete(ctx, &maps.AutocompleteRequest{Input: input})
}

func (s *quoteService) PlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error) {
	if placeID == "" {
		return nil, fmt.Errorf("place id is required")
	}
	return s.mapsProvider.GetPlaceDetails(ctx, placeID)
}
