package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/pricing"
	"github.com/recycletrack/recycletrack-backend/internal/workflow"
	"gorm.io/gorm"
)

var (
	ErrPickupNotFound       = errors.New("pickup request not found")
	ErrCollectorNotFound    = errors.New("collector not found")
	ErrCollectorNotVerified = errors.New("collector is not verified")
	ErrCenterRejectsWaste   = errors.New("selected center does not accept this waste type")
	ErrInvalidWeight        = errors.New("weight must be a positive number")
	ErrNotYourJob           = errors.New("pickup is not assigned to you")
	ErrUnpaidPickup         = errors.New("pickup must be paid before verification")
	ErrRejectReasonRequired = errors.New("rejection reason is required")
)

type PickupService struct {
	db            *gorm.DB
	rates         *pricing.Registry
	wallets       *WalletService
	gamification  *GamificationService
	notifications *NotificationService
}

func NewPickupService(db *gorm.DB, rates *pricing.Registry, wallets *WalletService, gamification *GamificationService, notifications *NotificationService) *PickupService {
	return &PickupService{
		db:            db,
		rates:         rates,
		wallets:       wallets,
		gamification:  gamification,
		notifications: notifications,
	}
}

// Create books a pickup for a resident. When a center is chosen it must
// accept the waste type; validation happens before anything is written.
func (s *PickupService) Create(userID uuid.UUID, req *dto.CreatePickupRequest) (*models.PickupRequest, error) {
	if req.WasteType == "" || req.ScheduledDate == "" || req.PickupAddress == "" {
		return nil, errors.New("waste_type, scheduled_date and pickup_address are required")
	}
	if _, err := time.Parse("2006-01-02", req.ScheduledDate); err != nil {
		return nil, errors.New("scheduled_date must be YYYY-MM-DD")
	}

	pickup := models.PickupRequest{
		ID:            uuid.New(),
		UserID:        userID,
		WasteType:     req.WasteType,
		CenterName:    req.CenterName,
		Quantity:      req.Quantity,
		ScheduledDate: req.ScheduledDate,
		PickupAddress: req.PickupAddress,
		Region:        req.Region,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Status:        models.PickupPending,
	}

	if req.CenterID != nil {
		var center models.RecyclingCenter
		if err := s.db.First(&center, "id = ?", *req.CenterID).Error; err != nil {
			return nil, errors.New("center not found")
		}
		if !center.AcceptsMaterial(req.WasteType) {
			return nil, ErrCenterRejectsWaste
		}
		pickup.CenterID = &center.ID
		pickup.CenterName = center.Name
	}

	if err := s.db.Create(&pickup).Error; err != nil {
		return nil, fmt.Errorf("failed to create pickup: %w", err)
	}

	slog.Info("pickup created", "pickup_id", pickup.ID, "user_id", userID, "waste_type", pickup.WasteType)
	return &pickup, nil
}

// Assign moves a pending pickup to a verified collector.
func (s *PickupService) Assign(pickupID uuid.UUID, req *dto.AssignPickupRequest) (*models.PickupRequest, error) {
	if req.CollectorID == uuid.Nil {
		return nil, errors.New("collector_id is required")
	}

	var collector models.User
	if err := s.db.Where("id = ? AND role = ? AND is_active = true", req.CollectorID, models.RoleServiceProvider).
		First(&collector).Error; err != nil {
		return nil, ErrCollectorNotFound
	}

	// Only vetted drivers take jobs.
	var verified int64
	s.db.Model(&models.DriverProfile{}).
		Where("user_id = ? AND is_verified = true", collector.ID).
		Count(&verified)
	if verified == 0 {
		return nil, ErrCollectorNotVerified
	}

	var pickup models.PickupRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pickup, "id = ?", pickupID).Error; err != nil {
			return ErrPickupNotFound
		}

		next, err := workflow.Apply(pickup.Status, workflow.EventAssign)
		if err != nil {
			return err
		}

		now := time.Now()
		pickup.Status = next
		pickup.CollectorID = &collector.ID
		pickup.AssignedAt = &now
		return tx.Save(&pickup).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(collector.ID, fmt.Sprintf("New pickup assigned: %s at %s on %s", pickup.WasteType, pickup.PickupAddress, pickup.ScheduledDate))
	s.notifications.Notify(pickup.UserID, fmt.Sprintf("A driver has been assigned to your %s pickup", pickup.WasteType))

	slog.Info("pickup assigned", "pickup_id", pickup.ID, "collector_id", collector.ID)
	return &pickup, nil
}

// Bill records the weighed quantity for an assigned job and moves it to
// collected. Only the assigned collector may bill, and the weight must be
// strictly positive.
func (s *PickupService) Bill(pickupID, collectorID uuid.UUID, req *dto.BillPickupRequest) (*models.PickupRequest, error) {
	if req.Weight <= 0 {
		return nil, ErrInvalidWeight
	}

	var pickup models.PickupRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pickup, "id = ?", pickupID).Error; err != nil {
			return ErrPickupNotFound
		}
		if pickup.CollectorID == nil || *pickup.CollectorID != collectorID {
			return ErrNotYourJob
		}

		next, err := workflow.Apply(pickup.Status, workflow.EventCollect)
		if err != nil {
			return err
		}

		pickup.Status = next
		pickup.ActualQuantity = req.Weight
		pickup.BilledAmount = req.Weight * s.rates.RateFor(pickup.WasteType)
		if err := tx.Save(&pickup).Error; err != nil {
			return err
		}

		return s.wallets.CreditJobEarning(tx, collectorID, &pickup)
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(pickup.UserID, fmt.Sprintf("Your %s pickup was collected: %.1f kg, KES %.2f due", pickup.WasteType, pickup.ActualQuantity, pickup.BilledAmount))

	slog.Info("pickup billed", "pickup_id", pickup.ID, "weight_kg", req.Weight, "billed", pickup.BilledAmount)
	return &pickup, nil
}

// Verify closes a collected, paid pickup. It awards the resident's points
// and releases the driver's pending earnings in the same transaction.
func (s *PickupService) Verify(pickupID uuid.UUID) (*models.PickupRequest, error) {
	var pickup models.PickupRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pickup, "id = ?", pickupID).Error; err != nil {
			return ErrPickupNotFound
		}

		next, err := workflow.Apply(pickup.Status, workflow.EventVerify)
		if err != nil {
			return err
		}
		if !pickup.IsPaid {
			return ErrUnpaidPickup
		}

		pickup.Status = next
		if err := tx.Save(&pickup).Error; err != nil {
			return err
		}

		if err := s.gamification.AwardPickupPoints(tx, &pickup); err != nil {
			return err
		}

		if pickup.CollectorID != nil {
			if err := s.wallets.ReleaseJobEarning(tx, *pickup.CollectorID, &pickup); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(pickup.UserID, fmt.Sprintf("Your %s pickup was verified. Points have been added to your account", pickup.WasteType))
	if pickup.CollectorID != nil {
		s.notifications.Notify(*pickup.CollectorID, "Job verified, payment released to your wallet")
	}

	slog.Info("pickup verified", "pickup_id", pickup.ID)
	return &pickup, nil
}

// Reject terminates a pickup from any non-terminal state. A reason is
// mandatory.
func (s *PickupService) Reject(pickupID uuid.UUID, req *dto.RejectPickupRequest) (*models.PickupRequest, error) {
	if req.Reason == "" {
		return nil, ErrRejectReasonRequired
	}

	var pickup models.PickupRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pickup, "id = ?", pickupID).Error; err != nil {
			return ErrPickupNotFound
		}

		next, err := workflow.Apply(pickup.Status, workflow.EventReject)
		if err != nil {
			return err
		}

		// A billed job that gets rejected must not leave phantom pending
		// earnings behind.
		if pickup.Status == models.PickupCollected && pickup.CollectorID != nil {
			if err := s.wallets.CancelJobEarning(tx, *pickup.CollectorID, &pickup); err != nil {
				return err
			}
		}

		pickup.Status = next
		pickup.RejectReason = req.Reason
		return tx.Save(&pickup).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(pickup.UserID, fmt.Sprintf("Your %s pickup was rejected: %s", pickup.WasteType, req.Reason))

	slog.Info("pickup rejected", "pickup_id", pickup.ID, "reason", req.Reason)
	return &pickup, nil
}

// MarkPaid flips is_paid on a collected pickup. Driven by the payment
// callback, never by a client directly.
func (s *PickupService) MarkPaid(pickupID uuid.UUID) error {
	var pickup models.PickupRequest
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		return ErrPickupNotFound
	}
	if pickup.Status != models.PickupCollected {
		return fmt.Errorf("%w: cannot pay a %s pickup", workflow.ErrIllegalTransition, pickup.Status)
	}
	return s.db.Model(&pickup).Update("is_paid", true).Error
}

// Pending returns the admin queue grouped by calendar day, newest day first.
func (s *PickupService) Pending() ([]dto.PickupGroup, error) {
	var pickups []models.PickupRequest
	if err := s.db.Preload("User").Preload("Collector").
		Where("status IN ?", []models.PickupStatus{models.PickupPending, models.PickupAssigned, models.PickupCollected}).
		Order("created_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return groupByDay(pickups, func(p models.PickupRequest) time.Time { return p.CreatedAt }), nil
}

// Jobs returns a collector's open assignments grouped by assignment day.
func (s *PickupService) Jobs(collectorID uuid.UUID) ([]dto.PickupGroup, error) {
	var pickups []models.PickupRequest
	if err := s.db.Preload("User").
		Where("collector_id = ? AND status = ?", collectorID, models.PickupAssigned).
		Order("assigned_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return groupByDay(pickups, func(p models.PickupRequest) time.Time {
		if p.AssignedAt != nil {
			return *p.AssignedAt
		}
		return p.CreatedAt
	}), nil
}

// History returns all pickups, optionally filtered to one collector or user.
func (s *PickupService) History(collectorID, userID *uuid.UUID) ([]models.PickupRequest, error) {
	q := s.db.Preload("User").Preload("Collector").Order("created_at DESC")
	if collectorID != nil {
		q = q.Where("collector_id = ?", *collectorID)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var pickups []models.PickupRequest
	if err := q.Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

// VerifiedHistory returns only completed jobs, the input to the financial
// rollups.
func (s *PickupService) VerifiedHistory() ([]models.PickupRequest, error) {
	var pickups []models.PickupRequest
	if err := s.db.Preload("User").Preload("Collector").
		Where("status = ?", models.PickupVerified).
		Order("created_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

func groupByDay(pickups []models.PickupRequest, keyTime func(models.PickupRequest) time.Time) []dto.PickupGroup {
	byDay := make(map[string][]dto.PickupBrief)
	for _, p := range pickups {
		day := keyTime(p).Format("2006-01-02")
		byDay[day] = append(byDay[day], toPickupBrief(p))
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]dto.PickupGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, dto.PickupGroup{Date: day, Pickups: byDay[day]})
	}
	return groups
}

func toPickupBrief(p models.PickupRequest) dto.PickupBrief {
	brief := dto.PickupBrief{
		ID:             p.ID,
		UserID:         p.UserID,
		ResidentName:   p.User.FullName,
		WasteType:      p.WasteType,
		CenterName:     p.CenterName,
		Quantity:       p.Quantity,
		ActualQuantity: p.ActualQuantity,
		ScheduledDate:  p.ScheduledDate,
		PickupAddress:  p.PickupAddress,
		Region:         p.Region,
		Status:         string(p.Status),
		CollectorID:    p.CollectorID,
		BilledAmount:   p.BilledAmount,
		IsPaid:         p.IsPaid,
		RejectReason:   p.RejectReason,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
	if p.Collector != nil {
		brief.CollectorName = p.Collector.FullName
	}
	return brief
}
