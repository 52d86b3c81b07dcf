package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/claims"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/metrics"
	"github.com/recycletrack/recycletrack-backend/internal/services"
	"github.com/recycletrack/recycletrack-backend/internal/workflow"
)

type PickupHandler struct {
	pickupService *services.PickupService
}

func NewPickupHandler(pickupService *services.PickupService) *PickupHandler {
	return &PickupHandler{pickupService: pickupService}
}

// pickupErrStatus maps service errors from the pickup workflow to HTTP
// statuses. Illegal transitions are conflicts, not validation failures.
func pickupErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrPickupNotFound),
		errors.Is(err, services.ErrCollectorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, workflow.ErrIllegalTransition),
		errors.Is(err, services.ErrUnpaidPickup),
		errors.Is(err, services.ErrCollectorNotVerified):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNotYourJob):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidWeight),
		errors.Is(err, services.ErrCenterRejectsWaste),
		errors.Is(err, services.ErrRejectReasonRequired):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadRequest
	}
}

func (h *PickupHandler) Create(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreatePickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pickup, err := h.pickupService.Create(userID, &req)
	if err != nil {
		return c.Status(pickupErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	metrics.PickupsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(pickup)
}

func (h *PickupHandler) Pending(c *fiber.Ctx) error {
	groups, err := h.pickupService.Pending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load pickup queue",
		})
	}
	return c.JSON(groups)
}

func (h *PickupHandler) Assign(c *fiber.Ctx) error {
	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pickup id",
		})
	}

	var req dto.AssignPickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pickup, err := h.pickupService.Assign(pickupID, &req)
	if err != nil {
		return c.Status(pickupErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(pickup)
}

func (h *PickupHandler) Bill(c *fiber.Ctx) error {
	collectorID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pickup id",
		})
	}

	var req dto.BillPickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pickup, err := h.pickupService.Bill(pickupID, collectorID, &req)
	if err != nil {
		return c.Status(pickupErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(pickup)
}

func (h *PickupHandler) Verify(c *fiber.Ctx) error {
	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pickup id",
		})
	}

	pickup, err := h.pickupService.Verify(pickupID)
	if err != nil {
		return c.Status(pickupErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	metrics.PickupsVerified.Inc()
	return c.JSON(pickup)
}

func (h *PickupHandler) Reject(c *fiber.Ctx) error {
	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pickup id",
		})
	}

	var req dto.RejectPickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pickup, err := h.pickupService.Reject(pickupID, &req)
	if err != nil {
		return c.Status(pickupErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(pickup)
}

// Jobs is the driver's open-assignment queue.
func (h *PickupHandler) Jobs(c *fiber.Ctx) error {
	collectorID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	groups, err := h.pickupService.Jobs(collectorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load jobs",
		})
	}
	return c.JSON(groups)
}

// History is the admin's full pickup history.
func (h *PickupHandler) History(c *fiber.Ctx) error {
	pickups, err := h.pickupService.History(nil, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load history",
		})
	}
	return c.JSON(pickups)
}

// MyHistory is the resident's own pickups.
func (h *PickupHandler) MyHistory(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	pickups, err := h.pickupService.History(nil, &userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load history",
		})
	}
	return c.JSON(pickups)
}

// DriverHistory is the collector's completed-job history.
func (h *PickupHandler) DriverHistory(c *fiber.Ctx) error {
	collectorID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	pickups, err := h.pickupService.History(&collectorID, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load history",
		})
	}
	return c.JSON(pickups)
}
