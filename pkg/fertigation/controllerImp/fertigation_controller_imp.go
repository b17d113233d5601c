package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldplot/entities"
	"fieldplot/pkg/fertigation/controller"
	"fieldplot/pkg/fertigation/service"
	fieldctl "fieldplot/pkg/field/controllerImp"
	fieldsvc "fieldplot/pkg/field/service"
	"fieldplot/pkg/report"
)

type FertigationCtrl struct {
	svc    service.FertigationService
	fields fieldsvc.FieldService
}

func New(svc service.FertigationService, fields fieldsvc.FieldService) controller.FertigationController {
	return &FertigationCtrl{svc: svc, fields: fields}
}

func (h *FertigationCtrl) Create(c echo.Context) error {
	var req entities.FertigationInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	e, err := h.svc.Create(c.Request().Context(), fieldctl.UID(c), c.Param("id"), req)
	if err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *FertigationCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), fieldctl.UID(c), c.Param("id"))
	if err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	if out == nil {
		out = []entities.FertigationEvent{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FertigationCtrl) Update(c echo.Context) error {
	var req entities.FertigationInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	e, err := h.svc.Update(c.Request().Context(), fieldctl.UID(c), c.Param("id"), req)
	if err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *FertigationCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), fieldctl.UID(c), c.Param("id")); err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FertigationCtrl) Export(c echo.Context) error {
	ctx, uid, plotID := c.Request().Context(), fieldctl.UID(c), c.Param("id")
	plot, err := h.fields.Get(ctx, plotID, uid)
	if err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	events, err := h.svc.List(ctx, uid, plotID)
	if err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	var buf bytes.Buffer
	if err := report.WriteFertigationLog(&buf, *plot, events); err != nil {
		return fieldctl.ErrorJSON(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="fertigation-%s.xlsx"`, plot.ID))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
