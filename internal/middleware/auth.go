package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/common"
	"taskboard/internal/services"

	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and places the authenticated user
// id into the request context. Requests fail here, before any store access,
// when the token is missing, malformed, expired, or carries a bad signature.
func JWTMiddleware(tokens services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			userID, ok := claims.UserID()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user id in token")
			}

			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
