package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes mounts /health and the uploads directory.
func BaseRoutes(app *fiber.App, db *gorm.DB, env, uploadDir, uploadURL string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		status := "ok"
		httpStatus := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			dbStatus = "unreachable"
			status = "down"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         status,
			"database":       dbStatus,
			"server_time":    time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    env,
		})
	})

	if uploadDir != "" {
		app.Static(uploadURL, uploadDir, fiber.Static{
			MaxAge:        86400,
			ByteRange:     true,
			Compress:      true,
			CacheDuration: time.Minute,
		})
	}
}
