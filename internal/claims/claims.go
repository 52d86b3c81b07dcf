package claims

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserID extracts the authenticated user's ID from the JWT stored in Locals.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid claims")
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing subject")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid subject")
	}
	return id, nil
}

// Role returns the role claim, or empty string if absent.
func Role(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := mapClaims["role"].(string)
	return role
}

// Email returns the email claim, or empty string if absent.
func Email(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := mapClaims["email"].(string)
	return email
}
