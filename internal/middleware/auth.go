package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected validates the Bearer token and stores the parsed token in
// Locals under "user". Failures get a 401 with a login redirect hint so
// the frontend can send the visitor back to the sign-in page.
func JWTProtected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "unauthorized",
				"message":  "invalid or expired token",
				"redirect": "/login",
			})
		},
	})
}
