package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recycletrack/recycletrack-backend/internal/claims"
	"github.com/recycletrack/recycletrack-backend/internal/models"
)

// RoleRequired rejects authenticated callers whose role is not in the allow
// list. The 403 body carries the caller's own dashboard path so the frontend
// can bounce them somewhere they are allowed to be.
func RoleRequired(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := claims.Role(c)
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "forbidden",
				"message":  "insufficient permissions",
				"redirect": models.HomeRoute(role),
			})
		}
		return c.Next()
	}
}
