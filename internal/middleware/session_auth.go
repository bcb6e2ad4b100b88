package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/models"
)

const userIDKey = "userID"

// RequireAuth checks for a valid session token and stores the resolved user
// id in the echo context. Requests without one are rejected uniformly with
// 401 before any handler runs.
func RequireAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := resolveSession(c, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// OptionalAuth resolves the session when a token is present but lets the
// request through anonymously otherwise. Used by the permissive comment
// creation route.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, err := resolveSession(c, jwtSecret); err == nil {
				c.Set(userIDKey, userID)
			}
			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user's id, or 0 when the
// request carries no session.
func UserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get(userIDKey).(uint); ok {
		return id
	}
	return 0
}

func resolveSession(c echo.Context, jwtSecret string) (uint, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return 0, errors.New("missing authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return 0, errors.New("invalid authorization header format")
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, errors.New("invalid token")
	}

	return claims.UserID, nil
}
