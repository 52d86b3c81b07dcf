package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTProtected(testSecret), RoleRequired(roles...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestAllowedRolePassesThrough(t *testing.T) {
	app := guardedApp(models.RoleAdmin)
	status, body := doRequest(t, app, signToken(t, models.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["message"])
}

func TestMissingTokenRedirectsToLogin(t *testing.T) {
	app := guardedApp(models.RoleAdmin)
	status, body := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "/login", body["redirect"])
}

func TestExpiredTokenRedirectsToLogin(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	app := guardedApp(models.RoleAdmin)
	status, body := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "/login", body["redirect"])
}

func TestForbiddenRoleRedirectsToOwnDashboard(t *testing.T) {
	cases := []struct {
		role     string
		redirect string
	}{
		{models.RoleResident, "/dashboard"},
		{models.RoleServiceProvider, "/driver/dashboard"},
		{models.RoleAdmin, "/admin/dashboard"},
		{"garbage-role", "/dashboard"},
	}

	for _, tc := range cases {
		allowed := models.RoleAdmin
		if tc.role == models.RoleAdmin {
			allowed = models.RoleResident
		}
		app := guardedApp(allowed)

		status, body := doRequest(t, app, signToken(t, tc.role))
		assert.Equal(t, fiber.StatusForbidden, status, "role %s", tc.role)
		assert.Equal(t, tc.redirect, body["redirect"], "role %s", tc.role)
	}
}

func TestMultipleAllowedRoles(t *testing.T) {
	app := guardedApp(models.RoleAdmin, models.RoleServiceProvider)

	status, _ := doRequest(t, app, signToken(t, models.RoleServiceProvider))
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, app, signToken(t, models.RoleResident))
	assert.Equal(t, fiber.StatusForbidden, status)
}
