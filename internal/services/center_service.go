package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/geo"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrCenterNotFound = errors.New("recycling center not found")

type CenterService struct {
	db *gorm.DB
}

func NewCenterService(db *gorm.DB) *CenterService {
	return &CenterService{db: db}
}

func (s *CenterService) List(activeOnly bool) ([]models.RecyclingCenter, error) {
	q := s.db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var centers []models.RecyclingCenter
	err := q.Find(&centers).Error
	return centers, err
}

func (s *CenterService) Get(id uuid.UUID) (*models.RecyclingCenter, error) {
	var center models.RecyclingCenter
	if err := s.db.First(&center, "id = ?", id).Error; err != nil {
		return nil, ErrCenterNotFound
	}
	return &center, nil
}

// ForWasteType returns active centers that accept the waste type, using the
// same substring match the booking form used to apply client-side.
func (s *CenterService) ForWasteType(wasteType string) ([]models.RecyclingCenter, error) {
	centers, err := s.List(true)
	if err != nil {
		return nil, err
	}
	return FilterCentersForWasteType(centers, wasteType), nil
}

// Nearby returns active centers within radiusMeters of a point, closest
// first, with distances attached.
func (s *CenterService) Nearby(lat, lng, radiusMeters float64) ([]dto.CenterResponse, error) {
	centers, err := s.List(true)
	if err != nil {
		return nil, err
	}

	nearby := make([]dto.CenterResponse, 0)
	for _, c := range centers {
		d := geo.Distance(lat, lng, c.Latitude, c.Longitude)
		if d > radiusMeters {
			continue
		}
		resp := toCenterResponse(&c)
		resp.DistanceMeters = &d
		nearby = append(nearby, resp)
	}

	sort.Slice(nearby, func(i, j int) bool {
		return *nearby[i].DistanceMeters < *nearby[j].DistanceMeters
	})
	return nearby, nil
}

func (s *CenterService) Create(req *dto.CenterRequest) (*models.RecyclingCenter, error) {
	if req.Name == "" || req.Address == "" {
		return nil, errors.New("name and address are required")
	}

	center := models.RecyclingCenter{
		ID:                uuid.New(),
		Name:              req.Name,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Phone:             req.Phone,
		OpenHours:         req.OpenHours,
		AcceptedMaterials: req.AcceptedMaterials,
		Services:          req.Services,
		IsActive:          true,
	}
	if req.IsActive != nil {
		center.IsActive = *req.IsActive
	}

	if err := s.db.Create(&center).Error; err != nil {
		return nil, fmt.Errorf("failed to create center: %w", err)
	}
	return &center, nil
}

func (s *CenterService) Update(id uuid.UUID, req *dto.CenterRequest) (*models.RecyclingCenter, error) {
	var center models.RecyclingCenter
	if err := s.db.First(&center, "id = ?", id).Error; err != nil {
		return nil, ErrCenterNotFound
	}

	updates := map[string]interface{}{
		"name":               req.Name,
		"address":            req.Address,
		"latitude":           req.Latitude,
		"longitude":          req.Longitude,
		"phone":              req.Phone,
		"open_hours":         req.OpenHours,
		"accepted_materials": req.AcceptedMaterials,
		"services":           req.Services,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&center).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

func (s *CenterService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.RecyclingCenter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCenterNotFound
	}
	return nil
}

// FilterCentersForWasteType keeps centers whose accepted materials contain
// the waste type, case-insensitively.
func FilterCentersForWasteType(centers []models.RecyclingCenter, wasteType string) []models.RecyclingCenter {
	filtered := make([]models.RecyclingCenter, 0, len(centers))
	for _, c := range centers {
		if c.AcceptsMaterial(wasteType) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ResolveSelection keeps the current selection when it survives filtering,
// otherwise falls back to the first filtered center, or nil when none match.
func ResolveSelection(filtered []models.RecyclingCenter, selected *uuid.UUID) *uuid.UUID {
	if selected != nil {
		for _, c := range filtered {
			if c.ID == *selected {
				return selected
			}
		}
	}
	if len(filtered) > 0 {
		id := filtered[0].ID
		return &id
	}
	return nil
}

func toCenterResponse(c *models.RecyclingCenter) dto.CenterResponse {
	return dto.CenterResponse{
		ID:                c.ID,
		Name:              c.Name,
		Address:           c.Address,
		Latitude:          c.Latitude,
		Longitude:         c.Longitude,
		AcceptedMaterials: c.AcceptedMaterials,
		Phone:             c.Phone,
		Services:          c.Services,
		OpenHours:         c.OpenHours,
		IsActive:          c.IsActive,
	}
}
