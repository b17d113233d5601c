package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Session requires "Authorization: Bearer <token>" and stores the user id under "uid".
func Session(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authorization header is required"})
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token format"})
			}
			uid, err := v.Verify(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
