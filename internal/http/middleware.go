package http

import (
	nethttp "net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"citypulse/backend/internal/service"
	"citypulse/backend/pkg/logger"
)

// AuthCookieName is the cookie the admin frontend stores its token in.
const AuthCookieName = "citypulse_auth"

const (
	submitPerMinute = 6
	submitBurst     = 3
	visitorTTL      = 10 * time.Minute
	maxVisitors     = 1024
)

// JWTAuthMiddleware rejects requests that do not carry a valid admin token
// in the Authorization header or the auth cookie.
func JWTAuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return c.JSON(nethttp.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			valid, err := authService.ValidateToken(token)
			if err != nil || !valid {
				return c.JSON(nethttp.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequestLoggerMiddleware logs one line per request at a level matching the
// response class.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			args := []any{
				"module", "http",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case status >= nethttp.StatusInternalServerError:
				logger.Error("request", args...)
			case status >= nethttp.StatusBadRequest:
				logger.Warn("request", args...)
			default:
				logger.Info("request", args...)
			}
			return nil
		}
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmitRateLimitMiddleware caps how fast a single IP can post comments.
// Limiters are kept per IP and pruned once the map grows past maxVisitors.
func SubmitRateLimitMiddleware(perMinute, burst int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = submitPerMinute
	}
	if burst <= 0 {
		burst = submitBurst
	}

	var mu sync.Mutex
	visitors := make(map[string]*visitor)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		v, ok := visitors[ip]
		if !ok {
			if len(visitors) >= maxVisitors {
				cutoff := time.Now().Add(-visitorTTL)
				for addr, stale := range visitors {
					if stale.lastSeen.Before(cutoff) {
						delete(visitors, addr)
					}
				}
			}
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(float64(perMinute))/60, burst)}
			visitors[ip] = v
		}
		v.lastSeen = time.Now()
		return v.limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				return c.JSON(nethttp.StatusTooManyRequests, map[string]string{"error": "too many submissions"})
			}
			return next(c)
		}
	}
}
