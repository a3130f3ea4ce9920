package logger

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"github.com/sirupsen/logrus"
)

// HTTPObserver receives per-request timings (prometheus in production).
type HTTPObserver interface {
	ObserveHTTP(method, route, status string, seconds float64)
}

// RequestLogger assigns a request id, bounds the request context with
// timeout and writes one logrus line per request.
func RequestLogger(timeout time.Duration, obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}

		start := time.Now()
		err := c.Next()
		if err != nil {
			// run the error handler now so the logged status is the final one
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		dur := time.Since(start)
		status := c.Response().StatusCode()

		entry := logrus.WithFields(logrus.Fields{
			"reqid":   id,
			"method":  c.Method(),
			"path":    c.OriginalURL(),
			"status":  status,
			"latency": dur.String(),
			"ip":      c.IP(),
		})
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}

		if obs != nil {
			obs.ObserveHTTP(c.Method(), c.Route().Path, strconv.Itoa(status), dur.Seconds())
		}
		return nil
	}
}
