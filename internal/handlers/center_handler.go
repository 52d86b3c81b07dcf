package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/services"
)

type CenterHandler struct {
	centerService *services.CenterService
}

func NewCenterHandler(centerService *services.CenterService) *CenterHandler {
	return &CenterHandler{centerService: centerService}
}

// List supports ?waste_type= for booking-form filtering, with an optional
// ?selected= center id that gets corrected against the filtered set. Without
// a filter, all active centers come back.
func (h *CenterHandler) List(c *fiber.Ctx) error {
	if wasteType := c.Query("waste_type"); wasteType != "" {
		centers, err := h.centerService.ForWasteType(wasteType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load centers",
			})
		}

		var selected *uuid.UUID
		if raw := c.Query("selected"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				selected = &id
			}
		}
		return c.JSON(dto.FilteredCentersResponse{
			Centers:  centers,
			Selected: services.ResolveSelection(centers, selected),
		})
	}

	centers, err := h.centerService.List(true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load centers",
		})
	}
	return c.JSON(centers)
}

func (h *CenterHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid center id",
		})
	}

	center, err := h.centerService.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Center not found",
		})
	}
	return c.JSON(center)
}

// Nearby expects ?lat=&lng= and optional ?radius= in meters (default 10km).
func (h *CenterHandler) Nearby(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "lat and lng query parameters are required",
		})
	}

	radius := 10000.0
	if r, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil && r > 0 {
		radius = r
	}

	centers, err := h.centerService.Nearby(lat, lng, radius)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load centers",
		})
	}
	return c.JSON(centers)
}

func (h *CenterHandler) Create(c *fiber.Ctx) error {
	var req dto.CenterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	center, err := h.centerService.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(center)
}

func (h *CenterHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid center id",
		})
	}

	var req dto.CenterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	center, err := h.centerService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrCenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Center not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update center",
		})
	}
	return c.JSON(center)
}

func (h *CenterHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid center id",
		})
	}

	if err := h.centerService.Delete(id); err != nil {
		if errors.Is(err, services.ErrCenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Center not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete center",
		})
	}
	return c.JSON(fiber.Map{"message": "Center deleted"})
}
