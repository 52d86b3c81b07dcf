package services

import (
	"errors"

	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("setting not found")

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SeedDefaults inserts the platform defaults without touching keys an admin
// has already tuned.
func (s *SettingsService) SeedDefaults() error {
	defaults := []models.Setting{
		{Key: "base_fee", Value: "100", Type: "float"},
		{Key: "commission_rate", Value: "0.20", Type: "float"},
		{Key: "default_rate_per_kg", Value: "50", Type: "float"},
		{Key: "points_per_kg", Value: "10", Type: "int"},
		{Key: "min_withdrawal_points", Value: "100", Type: "int"},
	}
	for _, d := range defaults {
		var existing models.Setting
		err := s.db.Where("key = ?", d.Key).Attrs(d).FirstOrCreate(&existing).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingsService) All() ([]models.Setting, error) {
	var settings []models.Setting
	err := s.db.Order("key ASC").Find(&settings).Error
	return settings, err
}

func (s *SettingsService) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, ErrSettingNotFound
	}
	return &setting, nil
}

// Delete removes one setting.
func (s *SettingsService) Delete(key string) error {
	result := s.db.Where("key = ?", key).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

// Set upserts one setting.
func (s *SettingsService) Set(req *dto.SettingRequest) (*models.Setting, error) {
	if req.Key == "" {
		return nil, errors.New("key is required")
	}

	var setting models.Setting
	err := s.db.Where("key = ?", req.Key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.Setting{Key: req.Key, Value: req.Value, Type: req.Type}
		if setting.Type == "" {
			setting.Type = "string"
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"value": req.Value}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if err := s.db.Model(&setting).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
