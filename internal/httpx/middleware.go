package httpx

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/metrics"
	"github.com/MikeMC777/ordenes-storefront/internal/storeapi"
)

const ridKey = "rid"

// RequestID reuses the caller's X-Request-ID or mints one, and carries it on
// the request context so backend calls send the same id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Request = c.Request.WithContext(storeapi.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ridKey)
}

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("rid", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("http", fields...)
		default:
			logger.Info("http", fields...)
		}
	}
}

// Metrics records request count and latency by route template.
func Metrics(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}
