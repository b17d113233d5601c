package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldplot/pkg/auth"
	authCtrlImp "fieldplot/pkg/auth/controllerImp"
	fertCtrlImp "fieldplot/pkg/fertigation/controllerImp"
	fertRepoImp "fieldplot/pkg/fertigation/repositoryImp"
	fertSvcImp "fieldplot/pkg/fertigation/serviceImp"
	fieldCtrlImp "fieldplot/pkg/field/controllerImp"
	fieldRepoImp "fieldplot/pkg/field/repositoryImp"
	fieldSvcImp "fieldplot/pkg/field/serviceImp"
	healthCtrlImp "fieldplot/pkg/health/controllerImp"
	"fieldplot/pkg/logger"
	"fieldplot/pkg/metrics"
)

type AppOptions struct {
	Issuer   *auth.Issuer
	DevLogin bool
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// NewApp wires repositories, services and controllers over db into a ready echo instance.
func NewApp(db *gorm.DB, o AppOptions) *echo.Echo {
	log := logger.OrNop(o.Logger)

	fRepo := fieldRepoImp.New(db)
	fSvc := fieldSvcImp.NewFieldService(fRepo, log)
	eRepo := fertRepoImp.New(db)
	eSvc := fertSvcImp.NewFertigationService(eRepo, fSvc, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	d := Deps{
		Fields:      fieldCtrlImp.New(fSvc),
		Fertigation: fertCtrlImp.New(eSvc, fSvc),
		Auth:        authCtrlImp.NewAuthController(o.Issuer),
		Health:      healthCtrlImp.NewHealthCtrl(db, log),
		Tokens:      o.Issuer,
		DevLogin:    o.DevLogin,
	}
	if o.Registry != nil {
		d.HTTPMetrics = metrics.NewHTTPMetrics(o.Registry)
		d.Gatherer = o.Registry
	}
	return New(e, d)
}
