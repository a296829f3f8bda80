package middleware

import (
	"log"
	"time"

	"trademart/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger  *log.Logger
	metrics *metrics.Metrics
}

func NewAccessLogMiddleware(logger *log.Logger, m *metrics.Metrics) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger, metrics: m}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		method := c.Method()
		path := c.Route().Path

		m.metrics.RecordHTTPRequest(method, path, status)
		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s",
			rid, c.IP(), method, c.OriginalURL(), status, dur,
		)

		return err
	}
}
