package ginadapter

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-log-viewer/internal/middleware"
)

const requestIDHeader = "X-Request-ID"

// NewEngine builds a standalone gin server with the same middleware stack as
// the chi router, /health, and whatever register mounts under prefix.
// Requests under prefix/api/ are bounded by requestTimeout.
func NewEngine(prefix string, corsOrigins []string, limiter *middleware.RateLimitMiddleware, requestTimeout time.Duration, register func(gin.IRouter)) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(wrap(middleware.CORS(corsOrigins)))
	engine.Use(wrap(middleware.SecurityHeaders))
	if limiter != nil {
		engine.Use(wrap(limiter.Handler))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	register(engine.Group(prefix))

	// Wraps the whole engine: a gin context must not outlive its handler.
	api := middleware.Timeout(requestTimeout)(engine)
	apiPrefix := prefix + "/api/"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			api.ServeHTTP(w, r)
			return
		}
		engine.ServeHTTP(w, r)
	})
}

// wrap runs a net/http middleware in front of the rest of the gin chain. A
// middleware that answers on its own aborts the chain.
func wrap(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		called := false
		mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !called {
			c.Abort()
		}
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(started).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			slog.Error("request", attrs...)
		case status >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
