package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	authCtl "fieldplot/pkg/auth/controller"
	fertCtl "fieldplot/pkg/fertigation/controller"
	fieldCtl "fieldplot/pkg/field/controller"
	"fieldplot/pkg/metrics"
	"fieldplot/pkg/middleware"
)

type Deps struct {
	Fields      fieldCtl.FieldController
	Fertigation fertCtl.FertigationController
	Auth        authCtl.AuthController
	Health      interface{ Health(echo.Context) error }
	Tokens      middleware.TokenVerifier

	// optional
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	DevLogin    bool
}

func New(e *echo.Echo, d Deps) *echo.Echo {
	if d.HTTPMetrics != nil {
		e.Use(d.HTTPMetrics.Middleware())
	}
	e.GET("/health", d.Health.Health)
	if d.Gatherer != nil {
		e.GET("/metrics", metrics.Handler(d.Gatherer))
	}

	session := middleware.Session(d.Tokens)

	a := e.Group("/auth")
	if d.DevLogin {
		a.POST("/dev-login", d.Auth.DevLogin)
	}
	a.GET("/users/me", d.Auth.WhoAmI, session)

	api := e.Group("/api", session)
	api.GET("/field-plots", d.Fields.List)
	api.POST("/field-plots", d.Fields.Create)
	api.GET("/field-plots/:id", d.Fields.Get)
	api.PUT("/field-plots/:id", d.Fields.Update)
	api.DELETE("/field-plots/:id", d.Fields.Delete)

	api.GET("/field-plots/:id/fertigation-events", d.Fertigation.List)
	api.POST("/field-plots/:id/fertigation-events", d.Fertigation.Create)
	api.GET("/field-plots/:id/fertigation-events/export", d.Fertigation.Export)
	api.PUT("/fertigation-events/:id", d.Fertigation.Update)
	api.DELETE("/fertigation-events/:id", d.Fertigation.Delete)
	return e
}
