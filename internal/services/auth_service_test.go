package services

import (
	"testing"
	"time"

	"github.com/recycletrack/recycletrack-backend/internal/config"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.JWTSecret = "test-secret"
	cfg.AdminEmails = "admin@recycletrack.co.ke"
	return cfg
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db := testutil.OpenTestDB(t)
	return NewAuthService(db, testConfig()), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "jane@example.com",
		Password: "password123",
		FullName: "Jane Wanjiku",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleResident, resp.User.Role)
	assert.Equal(t, "/dashboard", resp.Redirect)

	login, err := svc.Login(&dto.LoginRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "JANE@example.com", Password: "password456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(&dto.RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.Error(t, err)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(&dto.RegisterRequest{
		Email: "sneaky@example.com", Password: "password123", Role: models.RoleAdmin,
	})
	assert.Error(t, err)
}

func TestRegisterBootstrapAdmin(t *testing.T) {
	svc, _ := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{
		Email: "admin@recycletrack.co.ke", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Equal(t, "/admin/dashboard", resp.Redirect)
}

func TestRegisterDriverCreatesProfileAndWallet(t *testing.T) {
	svc, db := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{
		Email: "driver@example.com", Password: "password123", Role: models.RoleServiceProvider,
	})
	require.NoError(t, err)
	assert.Equal(t, "/driver/dashboard", resp.Redirect)

	var profile models.DriverProfile
	assert.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&profile).Error)
	var wallet models.Wallet
	assert.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&wallet).Error)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, db := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The presented token is single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated token still works.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, _ := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	err = svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@example.com", Password: "newpassword456"})
	assert.NoError(t, err)
}

func TestPurgeExpiredTokens(t *testing.T) {
	svc, db := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("user_id = ?", resp.User.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	deleted, err := svc.PurgeExpiredTokens()
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}
