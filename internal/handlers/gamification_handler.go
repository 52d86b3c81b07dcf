package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/recycletrack/recycletrack-backend/internal/claims"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/services"
)

type GamificationHandler struct {
	gamificationService *services.GamificationService
}

func NewGamificationHandler(gamificationService *services.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamificationService: gamificationService}
}

func (h *GamificationHandler) ReportActivity(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	var req dto.ReportActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	activity, err := h.gamificationService.ReportActivity(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrContentRejected) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (h *GamificationHandler) Activities(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	activities, err := h.gamificationService.Activities(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load activities",
		})
	}
	return c.JSON(activities)
}

func (h *GamificationHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.gamificationService.Leaderboard(c.Query("period"), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(entries)
}

func (h *GamificationHandler) Stats(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	stats, err := h.gamificationService.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}
	return c.JSON(stats)
}

func (h *GamificationHandler) Badges(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	badges, err := h.gamificationService.Badges(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load badges",
		})
	}
	return c.JSON(badges)
}

func (h *GamificationHandler) PointsHistory(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return err
	}

	history, err := h.gamificationService.PointsHistory(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load points history",
		})
	}
	return c.JSON(history)
}
