package handlers

import (
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/claims"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	callbackToken  string
}

func NewPaymentHandler(paymentService *services.PaymentService, callbackToken string) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, callbackToken: callbackToken}
}

func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	var req dto.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.paymentService.Initiate(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyPaid), errors.Is(err, services.ErrNothingToPay):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid payment id",
		})
	}

	resp, err := h.paymentService.Status(userID, paymentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Payment not found",
		})
	}
	return c.JSON(resp)
}

// Callback receives the gateway's result. It sits outside JWT auth and is
// guarded by a shared token header instead.
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	token := c.Get("X-Callback-Token")
	if h.callbackToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(h.callbackToken)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid callback token",
		})
	}

	var req dto.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.paymentService.HandleCallback(&req); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process callback",
		})
	}
	return c.JSON(fiber.Map{"message": "ok"})
}
