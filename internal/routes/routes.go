package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/recycletrack/recycletrack-backend/internal/config"
	"github.com/recycletrack/recycletrack-backend/internal/handlers"
	"github.com/recycletrack/recycletrack-backend/internal/metrics"
	"github.com/recycletrack/recycletrack-backend/internal/middleware"
	"github.com/recycletrack/recycletrack-backend/internal/models"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Pickup       *handlers.PickupHandler
	Wallet       *handlers.WalletHandler
	Withdrawal   *handlers.WithdrawalHandler
	Center       *handlers.CenterHandler
	Education    *handlers.EducationHandler
	Gamification *handlers.GamificationHandler
	Payment      *handlers.PaymentHandler
	Notification *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
	Settings     *handlers.SettingsHandler
}

func Setup(app *fiber.App, cfg *config.Config, h *Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	app.Get("/metrics", metrics.Handler())

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	jwt := middleware.JWTProtected(cfg.JWTSecret)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	driverOnly := middleware.RoleRequired(models.RoleServiceProvider)

	api.Post("/auth/logout", jwt, h.Auth.Logout)
	api.Get("/users/profile", jwt, h.Auth.Profile)
	api.Put("/users/profile", jwt, h.Auth.UpdateProfile)
	api.Put("/users/password", jwt, h.Auth.ChangePassword)
	api.Delete("/users/account", jwt, h.Auth.DeleteAccount)

	// Resident pickup flow
	api.Post("/pickups", jwt, h.Pickup.Create)
	api.Get("/pickups/mine", jwt, h.Pickup.MyHistory)

	// Driver surface
	driver := api.Group("/driver", jwt, driverOnly)
	driver.Get("/jobs", h.Pickup.Jobs)
	driver.Get("/history", h.Pickup.DriverHistory)
	driver.Put("/jobs/:id/bill", h.Pickup.Bill)
	driver.Get("/wallet", h.Wallet.Wallet)
	driver.Put("/documents", h.Admin.RegisterDocs)

	// Admin surface
	admin := api.Group("/admin", jwt, adminOnly)
	admin.Get("/pickups/pending", h.Pickup.Pending)
	admin.Get("/pickups/history", h.Pickup.History)
	admin.Put("/pickups/:id/assign", h.Pickup.Assign)
	admin.Put("/pickups/:id/verify", h.Pickup.Verify)
	admin.Put("/pickups/:id/reject", h.Pickup.Reject)
	admin.Get("/users", h.Admin.Users)
	admin.Put("/users/:id", h.Admin.UpdateUser)
	admin.Get("/collectors", h.Admin.Collectors)
	admin.Post("/collectors", h.Admin.CreateDriver)
	admin.Put("/collectors/:id/verify", h.Admin.VerifyDriver)
	admin.Delete("/collectors/:id", h.Admin.DeleteCollector)
	admin.Get("/financials", h.Admin.Financials)
	admin.Get("/withdrawals", h.Withdrawal.List)
	admin.Put("/withdrawals/:id/approve", h.Withdrawal.Approve)
	admin.Put("/withdrawals/:id/reject", h.Withdrawal.Reject)
	admin.Post("/centers", h.Center.Create)
	admin.Put("/centers/:id", h.Center.Update)
	admin.Delete("/centers/:id", h.Center.Delete)
	admin.Post("/articles", h.Education.Create)
	admin.Put("/articles/:id", h.Education.Update)
	admin.Delete("/articles/:id", h.Education.Delete)
	admin.Get("/settings", h.Settings.All)
	admin.Get("/settings/:key", h.Settings.Get)
	admin.Put("/settings", h.Settings.Set)
	admin.Delete("/settings/:key", h.Settings.Delete)

	// Map & education (public reads)
	api.Get("/map/centers", h.Center.List)
	api.Get("/map/centers/nearby", h.Center.Nearby)
	api.Get("/map/centers/:id", h.Center.Get)
	api.Get("/education/articles", h.Education.List)
	api.Get("/education/categories", h.Education.Categories)
	api.Get("/education/articles/:id", h.Education.Get)

	// Gamification
	api.Post("/gamification/activities", jwt, h.Gamification.ReportActivity)
	api.Get("/gamification/activities", jwt, h.Gamification.Activities)
	api.Get("/gamification/leaderboard", jwt, h.Gamification.Leaderboard)
	api.Get("/gamification/stats", jwt, h.Gamification.Stats)
	api.Get("/gamification/points-history", jwt, h.Gamification.PointsHistory)
	api.Get("/badges/my-badges", jwt, h.Gamification.Badges)

	// Withdrawals (resident)
	api.Post("/withdrawals", jwt, h.Withdrawal.Create)
	api.Get("/withdrawals/mine", jwt, h.Withdrawal.Mine)

	// Payments. The callback comes from the gateway, token-guarded, no JWT.
	api.Post("/payments/initiate", jwt, h.Payment.Initiate)
	api.Get("/payments/:id", jwt, h.Payment.Status)
	api.Post("/payments/callback", h.Payment.Callback)

	// Notifications
	api.Get("/notifications", jwt, h.Notification.List)
	api.Get("/notifications/unread", jwt, h.Notification.UnreadCount)
	api.Put("/notifications/read-all", jwt, h.Notification.MarkAllRead)
	api.Put("/notifications/:id/read", jwt, h.Notification.MarkRead)
}
