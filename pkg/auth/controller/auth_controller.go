package controller

import "github.com/labstack/echo/v4"

// AuthController issues and inspects session tokens.
type AuthController interface {
	// DevLogin answers {access_token, token_type} for the uid query parameter.
	DevLogin(c echo.Context) error
	// WhoAmI answers {id} for the bearer of the request's token.
	WhoAmI(c echo.Context) error
}
