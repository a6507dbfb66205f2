package middlewares

import (
	"crypto/subtle"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
	"github.com/onurcolak/smscountry-call-gateway/pkg/response"
)

const (
	APIKeyHeader = "X-Api-Key"
)

func keysMatch(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// APIKeyAuth guards one route group (scope is "calls" or "scheduler") with
// its own key. Rejections are logged with the request ID so they can be
// matched to the access log line.
func APIKeyAuth(scope, apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey == "" {
				logger.Errorf("Rejected %s %s: no %s API key configured (request %s)",
					c.Request().Method, c.Request().URL.Path, scope, requestID(c))
				return response.InternalServerError(c, fmt.Errorf("API key is not configured for the %s endpoints", scope))
			}

			token := c.Request().Header.Get(APIKeyHeader)
			if token == "" || !keysMatch(token, apiKey) {
				reason := "wrong"
				if token == "" {
					reason = "missing"
				}
				logger.Warnf("Rejected %s %s: %s %s API key (request %s)",
					c.Request().Method, c.Request().URL.Path, reason, scope, requestID(c))
				return response.Unauthorized(c)
			}

			return next(c)
		}
	}
}

// requestID is set on the response by echo's RequestID middleware, which
// runs ahead of the group middleware.
func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
