package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/claims"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/services"
)

type WithdrawalHandler struct {
	withdrawalService *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawalService *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	withdrawal, err := h.withdrawalService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientPoints) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(withdrawal)
}

func (h *WithdrawalHandler) Mine(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	withdrawals, err := h.withdrawalService.Mine(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load withdrawals",
		})
	}
	return c.JSON(withdrawals)
}

func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", "pending")
	withdrawals, err := h.withdrawalService.ByStatus(status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(withdrawals)
}

func (h *WithdrawalHandler) Approve(c *fiber.Ctx) error {
	withdrawalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid withdrawal id",
		})
	}

	withdrawal, err := h.withdrawalService.Approve(withdrawalID)
	if err != nil {
		return c.Status(withdrawalErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(withdrawal)
}

func (h *WithdrawalHandler) Reject(c *fiber.Ctx) error {
	withdrawalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid withdrawal id",
		})
	}

	var req dto.ResolveWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	withdrawal, err := h.withdrawalService.Reject(withdrawalID, req.Reason)
	if err != nil {
		return c.Status(withdrawalErrStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(withdrawal)
}

func withdrawalErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrWithdrawalNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrWithdrawalResolved):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
