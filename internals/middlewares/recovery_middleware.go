package middlewares

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware turns panics into 500s and logs the stack.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logrus.WithFields(logrus.Fields{
				"path":  c.Path(),
				"reqid": c.Locals("reqid"),
				"panic": fmt.Sprint(e),
			}).Error(string(debug.Stack()))
		},
	})
}
