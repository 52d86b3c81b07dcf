package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/finance"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrDriverHasOpenJobs = errors.New("driver still has open jobs")

type AdminService struct {
	db      *gorm.DB
	pickups *PickupService
}

func NewAdminService(db *gorm.DB, pickups *PickupService) *AdminService {
	return &AdminService{db: db, pickups: pickups}
}

// Users lists accounts, optionally filtered by role.
func (s *AdminService) Users(role string) ([]dto.UserResponse, error) {
	q := s.db.Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, nil
}

// Collectors returns the active driver fleet with profiles, the list the
// assignment picker draws from.
func (s *AdminService) Collectors() ([]models.DriverProfile, error) {
	var profiles []models.DriverProfile
	err := s.db.Preload("User").
		Joins("JOIN users ON users.id = driver_profiles.user_id").
		Where("users.role = ? AND users.is_active = true", models.RoleServiceProvider).
		Find(&profiles).Error
	return profiles, err
}

// CreateDriver provisions a service provider account with its profile and
// wallet in one transaction.
func (s *AdminService) CreateDriver(req *dto.CreateDriverRequest) (*dto.UserResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     models.RoleServiceProvider,
		IsActive: true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.DriverProfile{
			ID:         uuid.New(),
			UserID:     user.ID,
			IDNo:       req.IDNo,
			LicenseNo:  req.LicenseNo,
			VehicleReg: req.VehicleReg,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&models.Wallet{ID: uuid.New(), UserID: user.ID}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	resp := toUserResponse(&user)
	return &resp, nil
}

// DeleteCollector removes a driver account with its profile, wallet and
// sessions. Drivers holding open jobs cannot be removed.
func (s *AdminService) DeleteCollector(userID uuid.UUID) error {
	var user models.User
	err := s.db.Where("id = ? AND role = ?", userID, models.RoleServiceProvider).First(&user).Error
	if err != nil {
		return ErrUserNotFound
	}

	var open int64
	s.db.Model(&models.PickupRequest{}).
		Where("collector_id = ? AND status IN ?", userID,
			[]models.PickupStatus{models.PickupAssigned, models.PickupCollected}).
		Count(&open)
	if open > 0 {
		return ErrDriverHasOpenJobs
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err == nil {
			if err := tx.Where("wallet_id = ?", wallet.ID).Delete(&models.WalletTransaction{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&wallet).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.DriverProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// UpdateDriverDocs lets a driver file or correct their vetting documents.
// Changing documents drops the verified flag until an admin re-checks them.
func (s *AdminService) UpdateDriverDocs(userID uuid.UUID, req *dto.DriverDocsRequest) (*models.DriverProfile, error) {
	var profile models.DriverProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{"is_verified": false}
	if req.IDNo != "" {
		updates["id_no"] = req.IDNo
	}
	if req.LicenseNo != "" {
		updates["license_no"] = req.LicenseNo
	}
	if req.VehicleReg != "" {
		updates["vehicle_reg"] = req.VehicleReg
	}
	if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateUser patches profile fields, role and active status.
func (s *AdminService) UpdateUser(userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		switch *req.Role {
		case models.RoleResident, models.RoleServiceProvider, models.RoleAdmin:
			updates["role"] = *req.Role
		default:
			return nil, errors.New("invalid role")
		}
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	// Deactivation kills outstanding sessions.
	if req.IsActive != nil && !*req.IsActive {
		s.db.Model(&models.RefreshToken{}).
			Where("user_id = ?", userID).
			Update("revoked", true)
	}

	resp := toUserResponse(&user)
	return &resp, nil
}

// VerifyDriver flips the vetting flag on a driver profile.
func (s *AdminService) VerifyDriver(userID uuid.UUID) error {
	result := s.db.Model(&models.DriverProfile{}).
		Where("user_id = ?", userID).
		Update("is_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Financials builds the admin financial dashboard from verified history.
func (s *AdminService) Financials() (*dto.FinancialsResponse, error) {
	history, err := s.pickups.VerifiedHistory()
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	for _, p := range history {
		if p.CollectorID != nil && p.Collector != nil {
			names[*p.CollectorID] = p.Collector.FullName
		}
	}

	return &dto.FinancialsResponse{
		Summary:        finance.Summarize(history),
		DriverStats:    finance.PerDriver(history, names),
		WasteBreakdown: finance.WasteBreakdown(history),
	}, nil
}
