package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldplot/entities"
	"fieldplot/pkg/field/controller"
	"fieldplot/pkg/field/service"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) controller.FieldController { return &FieldCtrl{svc} }

func (h *FieldCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), UID(c))
	if err != nil {
		return ErrorJSON(c, err)
	}
	if out == nil {
		out = []entities.FieldPlot{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req entities.FieldPlotCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	p, err := h.svc.Create(c.Request().Context(), UID(c), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"), UID(c))
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *FieldCtrl) Update(c echo.Context) error {
	var req entities.FieldPlotUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	p, err := h.svc.Update(c.Request().Context(), c.Param("id"), UID(c), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), UID(c)); err != nil {
		return ErrorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UID is the session user set by the auth middleware.
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

// ErrorJSON maps service errors onto the API's {"error": ...} responses.
func ErrorJSON(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Msg})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
