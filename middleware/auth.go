package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopkart-io/shopkart-backend-go/store"
	"github.com/shopkart-io/shopkart-backend-go/utils"
)

// Auth validates the Bearer token and stores the authenticated user's id in
// the request context under "userID".
func Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
		}

		claims, err := utils.ParseToken(tokenParts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set("userID", claims.UserID)
		return next(c)
	}
}

// AdminOnly loads the authenticated user and rejects the request unless the
// account has the admin flag. Must run after Auth.
func AdminOnly(users store.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := utils.UserIDFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
			}
			if !user.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Admin access required"})
			}
			return next(c)
		}
	}
}
