package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/logging"
	"github.com/mongodb/grip/message"

	"solarapi/pkg/utils"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID propagates an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs the outcome of every request through grip.
func RequestLogger(logger grip.Journaler) gin.HandlerFunc {
	if logger == nil {
		logger = logging.MakeGrip(grip.GetSender())
	}

	return func(c *gin.Context) {
		startAt := time.Now()
		c.Next()

		status := c.Writer.Status()
		m := message.Fields{
			"action":      "completed",
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"query":       c.Request.URL.RawQuery,
			"remote":      c.ClientIP(),
			"request":     GetRequestID(c),
			"status":      status,
			"outcome":     http.StatusText(status),
			"duration_ms": time.Since(startAt).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			m["errors"] = c.Errors.String()
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(m)
		case status >= http.StatusBadRequest:
			logger.Notice(m)
		default:
			logger.Info(m)
		}
	}
}

// CORS applies the configured allow-list uniformly to every route.
func CORS(cfg utils.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			break
		}
	}
	if !c.AllowAllOrigins {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	if !c.AllowAllOrigins && len(c.AllowOrigins) == 0 {
		// cors.New rejects a config that allows nothing.
		c.AllowOriginFunc = func(string) bool { return false }
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	}

	return cors.New(c)
}
