package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/logger"
)

type VehicleService interface {
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, *utils.PaginationMeta, error)
	ListBookable(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, *utils.PaginationMeta, error)
	Get(ctx context.Context, id string) (*models.Vehicle, error)

	Create(ctx context.Context, request *VehicleRequest) (*models.Vehicle, error)
	Update(ctx context.Context, id string, request *VehicleUpdateRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

type vehicleService struct {
	vehicleRepo interfaces.VehicleRepository
	logger      *logger.Logger
}

func NewVehicleService(vehicleRepo interfaces.VehicleRepository, log *logger.Logger) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		logger:      log,
	}
}

type VehicleRequest struct {
	Name         string             `json:"name" validate:"required,min=2,max=80"`
	Brand        string             `json:"brand" validate:"required,min=2,max=50"`
	Type         models.VehicleType `json:"type" validate:"required"`
	LicensePlate string             `json:"license_plate" validate:"required,license_plate"`
	Seats        int                `json:"seats" validate:"required,min=1,max=60"`
	Mileage      float64            `json:"mileage"`
	Location     string             `json:"location"`
	PricePerKm   float64            `json:"price_per_km" validate:"min=0"`
	PricePerHour float64            `json:"price_per_hour" validate:"min=0"`
	Images       []string           `json:"images"`
}

type VehicleUpdateRequest struct {
	Name         *string  `json:"name,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Seats        *int     `json:"seats,omitempty"`
	Mileage      *float64 `json:"mileage,omitempty"`
	PricePerKm   *float64 `json:"price_per_km,omitempty"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`
	Images       []string `json:"images,omitempty"`
	Available    *bool    `json:"available,omitempty"`
}

func (s *vehicleService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, *utils.PaginationMeta, error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return vehicles, utils.CreatePaginationMeta(params, total), nil
}

func (s *vehicleService) ListBookable(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, *utils.PaginationMeta, error) {
	if vehicleType != "" && !models.IsValidVehicleType(vehicleType) {
		return nil, nil, fmt.Errorf("invalid vehicle type %q", vehicleType)
	}

	vehicles, total, err := s.vehicleRepo.ListBookable(ctx, vehicleType, params)
	if err != nil {
		return nil, nil, err
	}
	return vehicles, utils.CreatePaginationMeta(params, total), nil
}

func (s *vehicleService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id")
	}
	return s.vehicleRepo.GetByID(ctx, oid)
}

func (s *vehicleService) Create(ctx context.Context, request *VehicleRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !models.IsValidVehicleType(request.Type) {
		return nil, fmt.Errorf("invalid vehicle type %q", request.Type)
	}
	if request.PricePerKm == 0 && request.PricePerHour == 0 {
		return nil, fmt.Errorf("vehicle needs a per-km or per-hour rate")
	}

	if existing, _ := s.vehicleRepo.GetByLicensePlate(ctx, request.LicensePlate); existing != nil {
		return nil, fmt.Errorf("vehicle with this license plate already exists")
	}

	vehicle := &models.Vehicle{
		Name:         request.Name,
		Brand:        request.Brand,
		Type:         request.Type,
		LicensePlate: request.LicensePlate,
		Seats:        request.Seats,
		Mileage:      request.Mileage,
		Location:     request.Location,
		PricePerKm:   request.PricePerKm,
		PricePerHour: request.PricePerHour,
		Images:       request.Images,
		Available:    true,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.WithError(err).Error("Failed to create vehicle")
		return nil, err
	}

	return vehicle, nil
}

func (s *vehicleService) Update(ctx context.Context, id string, request *VehicleUpdateRequest) (*models.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id")
	}

	updates := make(map[string]interface{})
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Brand != nil {
		updates["brand"] = *request.Brand
	}
	if request.Location != nil {
		updates["location"] = *request.Location
	}
	if request.Seats != nil {
		updates["seats"] = *request.Seats
	}
	if request.Mileage != nil {
		updates["mileage"] = *request.Mileage
	}
	if request.PricePerKm != nil {
		updates["price_per_km"] = *request.PricePerKm
	}
	if request.PricePerHour != nil {
		updates["price_per_hour"] = *request.PricePerHour
	}
	if request.Images != nil {
		updates["images"] = request.Images
	}
	if request.Available != nil {
		updates["available"] = *request.Available
	}

	if len(updates) == 0 {
		return s.vehicleRepo.GetByID(ctx, oid)
	}

	if err := s.vehicleRepo.Update(ctx, oid, updates); err != nil {
		return nil, err
	}

	return s.vehicleRepo.GetByID(ctx, oid)
}

func (s *vehicleService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle id")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if vehicle.IsBooked {
		return fmt.Errorf("cannot delete a booked vehicle")
	}

	return s.vehicleRepo.Delete(ctx, oid)
}

func (s *vehicleService) SetAvailability(ctx context.Context, id string, available bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle id")
	}
	return s.vehicleRepo.SetAvailability(ctx, oid, available)
}
