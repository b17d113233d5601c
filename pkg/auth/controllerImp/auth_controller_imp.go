package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"fieldplot/pkg/auth"
	"fieldplot/pkg/auth/controller"
)

type authCtrl struct {
	issuer *auth.Issuer
}

func NewAuthController(issuer *auth.Issuer) controller.AuthController {
	return &authCtrl{issuer: issuer}
}

// DevLogin issues a token for any uid; only routed when dev login is enabled.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		uid = "U_DEV_DEFAULT"
	}
	pair, err := h.issuer.Issue(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	return c.JSON(http.StatusOK, map[string]string{"id": uid})
}
