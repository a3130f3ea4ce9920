package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	authRoutes "skb_backend/internals/features/users/auth/route"
	"skb_backend/internals/features/users/auth/scheduler"
	paymentRoutes "skb_backend/internals/features/payments/route"
	"skb_backend/internals/metrics"
	"skb_backend/internals/middlewares/auth"
	routeDetails "skb_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes builds every feature from d and mounts it on app. ctx bounds
// background jobs started here.
func SetupRoutes(ctx context.Context, app *fiber.App, d routeDetails.Deps) {
	startTime = time.Now()
	h := routeDetails.NewHandlers(d)

	jwtOpts := auth.AuthJWTOpts{
		Secret:              d.Config.JWT.Secret,
		AllowCookieFallback: true,
		BlacklistChecker:    h.AuthService.IsRevoked,
		ActiveChecker:       h.AuthService.IsActive,
	}

	logrus.Info("setting up base routes")
	BaseRoutes(app, d.DB, d.Config.Server.Env, d.Config.Upload.Dir, d.Config.Upload.PublicURL)
	if m, ok := d.Metrics.(*metrics.Metrics); ok {
		app.Get("/metrics", m.Handler())
	}

	logrus.Info("setting up auth routes")
	authRoutes.AuthRoutes(app, h.Auth, auth.AuthJWT(jwtOpts))

	logrus.Info("setting up public group")
	public := app.Group("/api/public", auth.OptionalAuth(jwtOpts))
	routeDetails.PublicRoutes(public, h)

	logrus.Info("setting up admin group")
	admin := app.Group("/api/a",
		auth.AuthJWT(jwtOpts),
		auth.RequireAdmin("the admin panel"),
	)
	routeDetails.AdminRoutes(admin, h)

	paymentRoutes.PaymentRoutes(app, h.Payments)

	scheduler.StartBlacklistCleanupScheduler(ctx, h.Blacklist, 24*time.Hour)
}
