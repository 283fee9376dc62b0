package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleTypeSedan       VehicleType = "Sedan"
	VehicleTypeSUV         VehicleType = "SUV"
	VehicleTypeBike        VehicleType = "Bike"
	VehicleTypeConvertible VehicleType = "Convertible"
	VehicleTypeTruck       VehicleType = "Truck"
	VehicleTypeVan         VehicleType = "Van"
	VehicleTypeCoupe       VehicleType = "Coupe"
	VehicleTypeWagon       VehicleType = "Wagon"
	VehicleTypeOther       VehicleType = "Other"
)

var VehicleTypes = []VehicleType{
	VehicleTypeSedan, VehicleTypeSUV, VehicleTypeBike, VehicleTypeConvertible,
	VehicleTypeTruck, VehicleTypeVan, VehicleTypeCoupe, VehicleTypeWagon,
	VehicleTypeOther,
}

func IsValidVehicleType(t VehicleType) bool {
	for _, vt := range VehicleTypes {
		if vt == t {
			return true
		}
	}
	return false
}

type Vehicle struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required,min=2,max=80"`
	Brand        string             `json:"brand" bson:"brand" validate:"required,min=2,max=50"`
	Type         VehicleType        `json:"type" bson:"type" validate:"required"`
	LicensePlate string             `json:"license_plate" bson:"license_plate" validate:"required"`
	Seats        int                `json:"seats" bson:"seats" validate:"required,min=1,max=60"`
	Mileage      float64            `json:"mileage" bson:"mileage"`
	Location     string             `json:"location" bson:"location"`
	PricePerKm   float64            `json:"price_per_km" bson:"price_per_km"`
	PricePerHour float64            `json:"price_per_hour" bson:"price_per_hour"`
	Images       []string           `json:"images" bson:"images"`
	Rating       float64            `json:"rating" bson:"rating" default:"0"`
	TotalReviews int                `json:"total_reviews" bson:"total_reviews" default:"0"`
	Available    bool               `json:"available" bson:"available" default:"true"`
	IsBooked     bool               `json:"is_booked" bson:"is_booked" default:"false"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Bookable reports whether the vehicle can appear in a route search.
func (v *Vehicle) Bookable() bool {
	return v.Available && !v.IsBooked
}
