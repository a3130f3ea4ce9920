package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"skb_backend/internals/middlewares/logger"
)

type Options struct {
	AllowOrigins   string
	RequestTimeout time.Duration
	Observer       logger.HTTPObserver
}

func SetupMiddlewares(app *fiber.App, o Options) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.RequestLogger(o.RequestTimeout, o.Observer))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(CorsMiddleware(o.AllowOrigins))
	app.Use(GlobalRateLimiter())
}
