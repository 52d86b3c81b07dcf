package dto

import (
	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/models"
)

type CenterRequest struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	AcceptedMaterials string   `json:"accepted_materials"`
	Phone             string   `json:"phone"`
	Services          string   `json:"services"`
	OpenHours         string   `json:"open_hours"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

// FilteredCentersResponse pairs a waste-type-filtered center list with the
// corrected selection for the booking form.
type FilteredCentersResponse struct {
	Centers  []models.RecyclingCenter `json:"centers"`
	Selected *uuid.UUID               `json:"selected_center_id"`
}

type CenterResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	AcceptedMaterials string    `json:"accepted_materials"`
	Phone             string    `json:"phone"`
	Services          string    `json:"services"`
	OpenHours         string    `json:"open_hours"`
	IsActive          bool      `json:"is_active"`
	DistanceMeters    *float64  `json:"distance_meters,omitempty"`
}
